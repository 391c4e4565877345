package analytics

import "math"

// AverageAttempts is the mean number of submissions needed to reach a correct answer.
func AverageAttempts(attempts []Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	var sum float64
	for _, a := range attempts {
		sum += float64(a.AttemptsToCorrect)
	}
	return sum / float64(len(attempts))
}

// AverageTimeSeconds is the mean time to correct in seconds, unrounded.
func AverageTimeSeconds(attempts []Attempt) float64 {
	return averageTimeMs(attempts) / 1000.0
}

func averageTimeMs(attempts []Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	var sum float64
	for _, a := range attempts {
		sum += float64(a.TimeToCorrectMs)
	}
	return sum / float64(len(attempts))
}

// AccuracyProxy returns 100 × mean(1/attempts_to_correct).
// It weights first-try answers fully and is not a right/wrong ratio.
func AccuracyProxy(attempts []Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	var sum float64
	for _, a := range attempts {
		sum += 1.0 / float64(a.AttemptsToCorrect)
	}
	return 100.0 * sum / float64(len(attempts))
}

// FirstTryRate is the fraction of attempts solved on the first submission.
func FirstTryRate(attempts []Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	count := 0
	for _, a := range attempts {
		if a.FirstTry() {
			count++
		}
	}
	return float64(count) / float64(len(attempts))
}

// Completed reports whether an attempt counts towards mastery.
func Completed(a Attempt, threshold int) bool {
	return a.AttemptsToCorrect <= threshold
}

// MasteryRate is the fraction of attempts meeting the mastery threshold.
func MasteryRate(attempts []Attempt, threshold int) float64 {
	if len(attempts) == 0 {
		return 0
	}
	count := 0
	for _, a := range attempts {
		if Completed(a, threshold) {
			count++
		}
	}
	return float64(count) / float64(len(attempts))
}

type problemKey struct {
	concept string
	problem int
}

// CompletedProblems counts distinct (concept, problem) pairs with at least one completed attempt.
func CompletedProblems(attempts []Attempt, threshold int) int {
	seen := make(map[problemKey]struct{})
	for _, a := range attempts {
		if Completed(a, threshold) {
			seen[problemKey{concept: a.ConceptID, problem: a.ProblemNo}] = struct{}{}
		}
	}
	return len(seen)
}

// Progress returns completed/total clamped to [0, 1].
func Progress(completed, total int) float64 {
	if total <= 0 || completed <= 0 {
		return 0
	}
	fraction := float64(completed) / float64(total)
	if fraction > 1 {
		return 1
	}
	return fraction
}

// MeanProgress averages individual progress values over the whole population,
// students without attempts contributing zero.
func MeanProgress(byStudent map[string][]Attempt, students []string, total, threshold int) float64 {
	if len(students) == 0 {
		return 0
	}
	var sum float64
	for _, id := range students {
		sum += Progress(CompletedProblems(byStudent[id], threshold), total)
	}
	return sum / float64(len(students))
}

// GroupByStudent partitions attempts by student id, preserving input order.
func GroupByStudent(attempts []Attempt) map[string][]Attempt {
	out := make(map[string][]Attempt)
	for _, a := range attempts {
		out[a.StudentID] = append(out[a.StudentID], a)
	}
	return out
}

// GroupByConcept partitions attempts by canonical concept code.
func GroupByConcept(attempts []Attempt) map[string][]Attempt {
	out := make(map[string][]Attempt)
	for _, a := range attempts {
		out[a.ConceptID] = append(out[a.ConceptID], a)
	}
	return out
}

// Round rounds half away from zero to the given number of decimals.
func Round(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
