package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/tock/stats"
)

// AnalyzeLogFile reads a log written by StartCompVComp and summarizes it.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyzeLog(file)
}

func analyzeLog(rd io.Reader) (string, error) {
	r := csv.NewReader(rd)

	// Record looks like:
	// gameID,winner,turns,cycles,abandoned
	summary := &Summary{}
	cycles := &stats.Statistic{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		var res Result
		if res.Winner, err = strconv.Atoi(record[1]); err != nil {
			return "", err
		}
		if res.Turns, err = strconv.Atoi(record[2]); err != nil {
			return "", err
		}
		if res.Cycles, err = strconv.Atoi(record[3]); err != nil {
			return "", err
		}
		if res.Abandoned, err = strconv.ParseBool(record[4]); err != nil {
			return "", err
		}
		if !res.Abandoned && (res.Winner < 0 || res.Winner > 1) {
			return "", fmt.Errorf("bad winner %d in game %s", res.Winner, record[0])
		}
		summary.add(res)
		if !res.Abandoned {
			cycles.Push(float64(res.Cycles))
		}
	}
	return summary.ToDisplayText() +
		fmt.Sprintf("Mean cycles: %.3f  Stdev: %.3f\n", cycles.Mean(), cycles.Stdev()), nil
}

// ToDisplayText formats a summary for a terminal.
func (s *Summary) ToDisplayText() string {
	p := s.Team0WinRate()
	lo, hi := p.Interval(95)
	str := fmt.Sprintf("Games played: %d\n", s.Games)
	str += fmt.Sprintf("Abandoned: %d\n", s.Abandoned)
	str += fmt.Sprintf("Team 0 wins: %d (%.3f%%, 95%% CI %.3f%% - %.3f%%)\n",
		s.Wins[0], 100*p.Rate(), 100*lo, 100*hi)
	str += fmt.Sprintf("Team 1 wins: %d\n", s.Wins[1])
	str += fmt.Sprintf("Mean turns: %.3f  Stdev: %.3f\n", s.Turns.Mean(), s.Turns.Stdev())
	return str
}
