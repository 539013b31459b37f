package jwt

import "strconv"

func formatSubject(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func parseSubject(sub string) (int64, error) {
	return strconv.ParseInt(sub, 10, 64)
}
