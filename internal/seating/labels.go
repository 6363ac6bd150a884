package seating

import "strings"

// RowLabels returns n row labels in order: A..Z, then AA, AB, …
func RowLabels(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = indexToRowLabel(i)
	}
	return out
}

// indexToRowLabel converts a zero-based index to an alphabetical row label like A, B, AA
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// rowLabelToIndex converts a row label like A or AA into its zero-based index
func rowLabelToIndex(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}

// SplitSeatID splits an id such as "B12" into its row label and number.
// ok is false for ids that do not follow the label+number shape; such ids
// are still legal members of a booked set, they just never match a seat.
func SplitSeatID(id string) (row string, number int, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(id))
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return "", 0, false
	}
	n := 0
	for _, ch := range s[i:] {
		if ch < '0' || ch > '9' {
			return "", 0, false
		}
		n = n*10 + int(ch-'0')
	}
	if n == 0 {
		return "", 0, false
	}
	return s[:i], n, true
}
