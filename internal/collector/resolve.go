package collector

// JapanSuffix turns a Tokyo Stock Exchange security code into a provider symbol.
const JapanSuffix = ".T"

// Resolve maps a user query to the provider symbol.
// A non-empty query made only of ASCII digits is a Japanese security code and gets
// JapanSuffix; anything else is returned unchanged.
func Resolve(query string) string {
	if isDigits(query) {
		return query + JapanSuffix
	}
	return query
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
