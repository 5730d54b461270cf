package experience

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthName = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

// rangePattern matches "[Mon] YYYY – ([Mon] YYYY | present)". Submatches:
// 1 start month name, 2 start month number, 3 start year, 4 end month name,
// 5 end month number, 6 end year, 7 present token.
func rangePattern(presentAlt string) *regexp.Regexp {
	point := `(?:\b` + monthName + `[\s,]+|\b(\d{1,2})\s*/\s*)?\b((?:19|20)\d{2})`
	return regexp.MustCompile(`(?i)` + point +
		`(?:\s*(?:-|–|—|to|until|till)\s*|\s+)` +
		`(?:` + point + `\b|(` + presentAlt + `)\b)`)
}

var monthsByPrefix = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// dateRange is a parsed experience span. A nil endYear means the span is open.
type dateRange struct {
	startYear  int
	startMonth *int
	endYear    *int
	endMonth   *int
	current    bool
}

// parseRange reads the submatch indexes loc of a rangePattern match in s
func parseRange(s string, loc []int) (dateRange, error) {
	group := func(n int) string {
		if loc[2*n] < 0 {
			return ""
		}
		return s[loc[2*n]:loc[2*n+1]]
	}
	raw := s[loc[0]:loc[1]]

	var r dateRange
	r.startYear, _ = strconv.Atoi(group(3))

	startMonth, err := month(group(1), group(2))
	if err != nil {
		return r, &RangeError{Text: raw, Message: "invalid start month", Cause: err}
	}
	r.startMonth = startMonth

	if group(7) != "" {
		r.current = true
		return r, nil
	}

	endYear, _ := strconv.Atoi(group(6))
	r.endYear = &endYear
	endMonth, err := month(group(4), group(5))
	if err != nil {
		return r, &RangeError{Text: raw, Message: "invalid end month", Cause: err}
	}
	r.endMonth = endMonth
	return r, nil
}

func month(name, number string) (*int, error) {
	switch {
	case name != "":
		m := monthsByPrefix[strings.ToLower(name[:3])]
		return &m, nil
	case number != "":
		m, err := strconv.Atoi(number)
		if err != nil {
			return nil, err
		}
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("month %d out of range", m)
		}
		return &m, nil
	}
	return nil, nil
}

// months is the span length. Month arithmetic applies only when both ends
// carry a month; otherwise whole years are counted.
func (r dateRange) months(now time.Time) int {
	endYear, endMonth := now.Year(), int(now.Month())
	if r.endYear != nil {
		endYear = *r.endYear
		endMonth = 0
		if r.endMonth != nil {
			endMonth = *r.endMonth
		}
	} else if r.startMonth == nil {
		endMonth = 0
	}

	if r.startMonth == nil || endMonth == 0 {
		return (endYear - r.startYear) * 12
	}
	return (endYear-r.startYear)*12 + endMonth - *r.startMonth
}
