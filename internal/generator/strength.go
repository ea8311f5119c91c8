package generator

import "strings"

// commonPasswords is a small blocklist of the passwords seen most often in
// breach corpora. Matching is case-insensitive and exact.
var commonPasswords = []string{
	"password", "123456", "123456789", "qwerty", "abc123",
	"password123", "admin", "letmein", "welcome", "monkey",
	"1234567890", "password1", "qwerty123", "dragon", "master",
}

// keyboardRows are straight scans a careless password walks along.
var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"1234567890",
}

// Strength scores a password from 0 to 100. Length and character variety
// add points; repeating runs, keyboard scans, and known common passwords
// subtract them. The score is a heuristic for user feedback, not an entropy
// measurement.
func Strength(password string) int {
	if password == "" {
		return 0
	}

	var score int
	switch n := len(password); {
	case n < 8:
		score = 10
	case n < 12:
		score = 20
	case n < 16:
		score = 30
	case n < 20:
		score = 40
	case n < 24:
		score = 50
	default:
		score = 60
	}

	if strings.ContainsAny(password, upperChars) {
		score += 10
	}
	if strings.ContainsAny(password, lowerChars) {
		score += 10
	}
	if strings.ContainsAny(password, digitChars) {
		score += 10
	}
	if strings.ContainsAny(password, specialChars) {
		score += 10
	}

	if hasRepeatingPattern(password) {
		score -= 20
	}
	if isCommonPassword(password) {
		score -= 30
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// StrengthLabel maps a Strength score to a short human-readable rating.
func StrengthLabel(score int) string {
	switch {
	case score <= 20:
		return "Very Weak"
	case score <= 40:
		return "Weak"
	case score <= 60:
		return "Fair"
	case score <= 80:
		return "Good"
	case score <= 90:
		return "Strong"
	default:
		return "Very Strong"
	}
}

// hasRepeatingPattern reports a run of three identical characters or a
// three-character slice of a keyboard row.
func hasRepeatingPattern(password string) bool {
	for i := 0; i+2 < len(password); i++ {
		if password[i] == password[i+1] && password[i+1] == password[i+2] {
			return true
		}
	}

	lower := strings.ToLower(password)
	for _, row := range keyboardRows {
		for i := 0; i+3 <= len(lower); i++ {
			if strings.Contains(row, lower[i:i+3]) {
				return true
			}
		}
	}
	return false
}

func isCommonPassword(password string) bool {
	lower := strings.ToLower(password)
	for _, p := range commonPasswords {
		if lower == p {
			return true
		}
	}
	return false
}
