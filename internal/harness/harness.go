package harness

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/roach88/steam/internal/steam"
)

// StateResult is the outcome of one scenario state.
type StateResult struct {
	Name     string          `json:"name"`
	Case     string          `json:"case,omitempty"`
	Pass     bool            `json:"pass"`
	State    *steam.State    `json:"state,omitempty"`
	Code     steam.ErrorCode `json:"code,omitempty"`
	Error    string          `json:"error,omitempty"`
	Failures []string        `json:"failures,omitempty"`
}

// Report is the outcome of a scenario run. States keep scenario order.
type Report struct {
	Scenario string        `json:"scenario"`
	Pass     bool          `json:"pass"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	States   []StateResult `json:"states"`
}

// Run resolves every state of sc against r using a bounded worker pool.
// A cancelled context stops dispatching; states already dispatched still
// finish and Run returns the context error.
func Run(ctx context.Context, r *steam.Resolver, sc *Scenario) (*Report, error) {
	results := make([]StateResult, len(sc.States))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(sc.workers(), len(sc.States)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runState(r, sc.States[i], sc.tolerance())
			}
		}()
	}

	var runErr error
dispatch:
	for i := range sc.States {
		if runErr = ctx.Err(); runErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if runErr != nil {
		return nil, fmt.Errorf("run scenario %s: %w", sc.Name, runErr)
	}

	report := &Report{Scenario: sc.Name, Pass: true, States: results}
	for _, res := range results {
		if res.Pass {
			report.Passed++
		} else {
			report.Failed++
			report.Pass = false
		}
	}
	return report, nil
}

func runState(r *steam.Resolver, st StateStep, tol float64) StateResult {
	res := StateResult{Name: st.Name}

	s, err := st.build()
	if err != nil {
		res.Error = err.Error()
		res.Failures = append(res.Failures, err.Error())
		return res
	}
	if c, err := s.Case(); err == nil {
		res.Case = c.String()
	}

	err = r.Resolve(s)
	if err != nil {
		res.Code = steam.CodeOf(err)
		res.Error = err.Error()
	} else {
		res.State = s
	}
	res.Failures = check(st.Expect, s, err, tol)
	res.Pass = len(res.Failures) == 0
	return res
}

// check compares a resolution against its expectation. Values within
// tol·max(|want|, 1) pass.
func check(exp *Expect, s *steam.State, err error, tol float64) []string {
	var failures []string
	if exp != nil && exp.Error != "" {
		if err == nil {
			return []string{fmt.Sprintf("expected error %s, state resolved", exp.Error)}
		}
		if code := steam.CodeOf(err); code != exp.Error {
			failures = append(failures, fmt.Sprintf("expected error %s, got %s", exp.Error, code))
		}
		return failures
	}
	if err != nil {
		return []string{fmt.Sprintf("unexpected error %s", steam.CodeOf(err))}
	}
	if exp == nil {
		return nil
	}

	if exp.Region != "" && exp.Region != s.Region().String() {
		failures = append(failures, fmt.Sprintf("region: expected %s, got %s", exp.Region, s.Region()))
	}
	for _, sym := range sortedKeys(exp.Values) {
		p, _ := steam.ParseProperty(sym)
		want := exp.Values[sym]
		got, _ := s.Value(p)
		if math.Abs(got-want) > tol*math.Max(math.Abs(want), 1) {
			failures = append(failures, fmt.Sprintf("%s: expected %.6g, got %.6g", sym, want, got))
		}
	}
	return failures
}

// Format writes a plain-text summary, one line per state followed by its
// failures.
func (rep *Report) Format(w io.Writer) error {
	status := "PASS"
	if !rep.Pass {
		status = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "%s %s (%d passed, %d failed)\n", status, rep.Scenario, rep.Passed, rep.Failed); err != nil {
		return err
	}
	for _, res := range rep.States {
		mark := "ok  "
		if !res.Pass {
			mark = "FAIL"
		}
		var detail []string
		if res.Case != "" {
			detail = append(detail, res.Case)
		}
		switch {
		case res.State != nil:
			detail = append(detail, res.State.Region().String())
		case res.Code != "":
			detail = append(detail, string(res.Code))
		}
		if _, err := fmt.Fprintf(w, "  %s %-20s %s\n", mark, res.Name, strings.Join(detail, " ")); err != nil {
			return err
		}
		for _, f := range res.Failures {
			if _, err := fmt.Fprintf(w, "       %s\n", f); err != nil {
				return err
			}
		}
	}
	return nil
}
