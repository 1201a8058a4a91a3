// Package report summarises a finished run for people and for downstream
// plotting tools: cumulative detection curves, first-detection days and
// prevalence peaks.
package report

import (
	"fmt"
	"io"

	"github.com/nvandessel/contagion/internal/epidemic"
	"github.com/nvandessel/contagion/internal/network"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one run.
type Summary struct {
	Agents  int  `json:"agents"`
	DaysRun int  `json:"days_run"`
	Extinct bool `json:"extinct"`

	RandomGroupSize int `json:"random_group_size"`
	FriendGroupSize int `json:"friend_group_size"`

	// CumulativeRandom and CumulativeFriend are running totals of the daily
	// detection series.
	CumulativeRandom []float64 `json:"cumulative_random"`
	CumulativeFriend []float64 `json:"cumulative_friend"`

	TotalRandom int `json:"total_random"`
	TotalFriend int `json:"total_friend"`

	// FirstRandomDay and FirstFriendDay are -1 when the group saw nothing.
	FirstRandomDay int `json:"first_random_day"`
	FirstFriendDay int `json:"first_friend_day"`

	// FriendLead is how many days earlier the friend group first detected
	// an infection than the random group. Only meaningful when both
	// FirstRandomDay and FirstFriendDay are >= 0; otherwise it is left at 0.
	FriendLead int `json:"friend_lead"`

	PeakInfectious int     `json:"peak_infectious"`
	PeakDay        int     `json:"peak_day"`
	EverInfected   int     `json:"ever_infected"`
	AttackRate     float64 `json:"attack_rate"`

	MeanDegree   float64 `json:"mean_degree"`
	DegreeStdDev float64 `json:"degree_std_dev"`
}

// Summarize computes a Summary from a result and the network it ran on.
func Summarize(res *epidemic.Result, adj *network.Adjacency) Summary {
	random := toFloats(res.RandomDetections)
	friend := toFloats(res.FriendDetections)

	s := Summary{
		Agents:           res.N,
		DaysRun:          res.DaysRun(),
		Extinct:          res.Extinct(),
		RandomGroupSize:  res.RandomGroup.Len(),
		FriendGroupSize:  res.FriendGroup.Len(),
		CumulativeRandom: floats.CumSum(make([]float64, len(random)), random),
		CumulativeFriend: floats.CumSum(make([]float64, len(friend)), friend),
		TotalRandom:      int(floats.Sum(random)),
		TotalFriend:      int(floats.Sum(friend)),
		FirstRandomDay:   firstPositive(res.RandomDetections),
		FirstFriendDay:   firstPositive(res.FriendDetections),
	}
	if s.FirstRandomDay >= 0 && s.FirstFriendDay >= 0 {
		s.FriendLead = s.FirstRandomDay - s.FirstFriendDay
	}

	prevalence := toFloats(res.Prevalence())
	s.PeakDay = floats.MaxIdx(prevalence)
	s.PeakInfectious = int(prevalence[s.PeakDay])

	ever := make([]bool, res.N)
	for _, day := range res.Days() {
		for i, st := range day {
			if st == epidemic.Infectious {
				ever[i] = true
			}
		}
	}
	for _, e := range ever {
		if e {
			s.EverInfected++
		}
	}
	s.AttackRate = float64(s.EverInfected) / float64(res.N)

	if adj != nil && adj.N() > 1 {
		degrees := make([]float64, adj.N())
		for i := range degrees {
			degrees[i] = float64(adj.Degree(i))
		}
		s.MeanDegree, s.DegreeStdDev = stat.MeanStdDev(degrees, nil)
	}
	return s
}

// WriteText writes a human-readable report.
func (s Summary) WriteText(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("Agents:            %d (mean degree %.2f ± %.2f)", s.Agents, s.MeanDegree, s.DegreeStdDev),
		fmt.Sprintf("Days simulated:    %d%s", s.DaysRun, extinctSuffix(s.Extinct)),
		fmt.Sprintf("Peak infectious:   %d on day %d", s.PeakInfectious, s.PeakDay),
		fmt.Sprintf("Ever infected:     %d (%.1f%%)", s.EverInfected, 100*s.AttackRate),
		"",
		"Surveillance:",
		fmt.Sprintf("  random group:    %d members, %d detections, first %s", s.RandomGroupSize, s.TotalRandom, dayLabel(s.FirstRandomDay)),
		fmt.Sprintf("  friend group:    %d members, %d detections, first %s", s.FriendGroupSize, s.TotalFriend, dayLabel(s.FirstFriendDay)),
	}
	if s.FirstRandomDay >= 0 && s.FirstFriendDay >= 0 {
		lines = append(lines, fmt.Sprintf("  friend lead:     %d days", s.FriendLead))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func extinctSuffix(extinct bool) string {
	if extinct {
		return " (extinct)"
	}
	return ""
}

func dayLabel(day int) string {
	if day < 0 {
		return "never"
	}
	return fmt.Sprintf("on day %d", day)
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func firstPositive(xs []int) int {
	for i, x := range xs {
		if x > 0 {
			return i
		}
	}
	return -1
}
