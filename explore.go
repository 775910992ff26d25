package dscheck

import "context"

// explore drives run repeatedly, growing the explored state tree via
// dynamic partial-order reduction. state is the current execution prefix
// (strictly nonempty), clock maps
// proc to the index of its latest step, and lastAccess maps atomic-id to
// the index of its latest step. Tie-breaking is always by minimum
// process-id, for reproducible bug reports.
func (ex *Explorer) explore(ctx context.Context, f func(*Explorer), state execution, clock clockMap, lastAccess lastAccessMap) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ex.opts.maxInterleavings > 0 && ex.interleavingsCompleted >= ex.opts.maxInterleavings {
		return nil
	}

	s := state[len(state)-1]

	// Step A: seed backtracks at the earlier states where a race against
	// one of s's pending steps was last observed.
	for _, pr := range s.Procs {
		if !pr.step.hasTarget {
			continue
		}
		t, seen := lastAccess[pr.step.target]
		if !seen || t == 0 {
			continue
		}
		pred := state[t-1]
		if _, enabled := pred.Enabled[pr.procID]; enabled {
			pred.Backtrack[pr.procID] = struct{}{}
		} else {
			for id := range pred.Enabled {
				pred.Backtrack[id] = struct{}{}
			}
		}
	}

	// Step B: explore from s.
	if len(s.Enabled) == 0 {
		return nil
	}
	seed := s.enabledSorted()[0]
	s.Backtrack[seed] = struct{}{}

	dones := make(map[int]struct{})
	for {
		if ex.opts.maxInterleavings > 0 && ex.interleavingsCompleted >= ex.opts.maxInterleavings {
			return nil
		}
		j, ok := minNotDone(s.Backtrack, dones)
		if !ok {
			break
		}
		dones[j] = struct{}{}

		pr, ok := findProcRec(s, j)
		if !ok {
			continue
		}

		sched := append(state.schedule(), entry{proc: j, step: pr.step})

		ex.log(LevelDebug, "explore", "extending schedule", ex.runCounter, j, pr.step.target, nil)
		newLast := ex.run(f, sched)

		newState := make(execution, len(state)+1)
		copy(newState, state)
		newState[len(state)] = newLast

		newLastAccess := cloneIntMap(lastAccess)
		if pr.step.hasTarget {
			newLastAccess[pr.step.target] = len(newState) - 1
		}
		newClock := cloneIntMap(clock)
		newClock[j] = len(newState) - 1

		if err := ex.explore(ctx, f, newState, newClock, newLastAccess); err != nil {
			return err
		}
	}
	return nil
}

func findProcRec(s *State, procID int) (procRec, bool) {
	for _, pr := range s.Procs {
		if pr.procID == procID {
			return pr, true
		}
	}
	return procRec{}, false
}

// minNotDone returns the smallest key present in set but absent from done.
func minNotDone(set, done map[int]struct{}) (int, bool) {
	best := 0
	found := false
	for k := range set {
		if _, skip := done[k]; skip {
			continue
		}
		if !found || k < best {
			best = k
			found = true
		}
	}
	return best, found
}

func cloneIntMap(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
