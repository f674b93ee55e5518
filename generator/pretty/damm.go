package pretty

import "strconv"

// dammMatrix is the quasigroup table of the Damm check digit algorithm.
var dammMatrix = [10][10]int{
	{0, 3, 1, 7, 5, 9, 8, 6, 4, 2},
	{7, 0, 9, 2, 1, 5, 4, 8, 6, 3},
	{4, 2, 0, 6, 8, 7, 1, 3, 5, 9},
	{1, 7, 5, 0, 9, 8, 3, 4, 2, 6},
	{6, 1, 2, 3, 0, 4, 5, 9, 7, 8},
	{3, 6, 7, 4, 2, 0, 9, 5, 8, 1},
	{5, 8, 6, 9, 7, 2, 0, 1, 3, 4},
	{8, 9, 4, 5, 3, 6, 2, 0, 1, 7},
	{9, 4, 3, 8, 6, 1, 7, 2, 0, 5},
	{2, 5, 8, 1, 4, 3, 6, 7, 9, 0},
}

// dammChecksum folds the decimal digits of s; non-digits are skipped.
func dammChecksum(s string) int {
	interim := 0
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			interim = dammMatrix[interim][c-'0']
		}
	}
	return interim
}

// dammEncode appends the check digit to s.
func dammEncode(s string) string {
	return s + strconv.Itoa(dammChecksum(s))
}

// dammValid reports whether s ends with a correct check digit.
func dammValid(s string) bool {
	return dammChecksum(s) == 0
}
