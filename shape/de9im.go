package shape

var coveredByPatterns = []string{
	"T*F**F***",
	"*TF**F***",
	"**FT*F***",
	"**F*TF***",
}

// matrixRelation classifies a DE-9IM intersection matrix, as returned by the
// kernel, into one of the four relations.
func matrixRelation(matrix string) Relation {
	if matchesPattern(matrix, "T*****FF*") {
		return Contains
	}
	for _, p := range coveredByPatterns {
		if matchesPattern(matrix, p) {
			return Within
		}
	}
	if matchesPattern(matrix, "FF*FF****") {
		return Disjoint
	}
	return Intersects
}

func matchesPattern(matrix, pattern string) bool {
	if len(matrix) != 9 || len(pattern) != 9 {
		return false
	}
	for i := 0; i < 9; i++ {
		m, p := matrix[i], pattern[i]
		switch p {
		case '*':
		case 'T':
			if m != '0' && m != '1' && m != '2' {
				return false
			}
		case 'F':
			if m != 'F' {
				return false
			}
		default:
			if m != p {
				return false
			}
		}
	}
	return true
}
