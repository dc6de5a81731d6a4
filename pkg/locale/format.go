package locale

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Style names accepted by the formatting methods. Unknown styles fall back
// to the default for the method.
const (
	StyleShort   = "short"
	StyleMedium  = "medium"
	StyleLong    = "long"
	StyleFull    = "full"
	StylePercent = "percent"
	StyleInteger = "integer"
)

// maxFractionDigits is the precision of the default number style.
const maxFractionDigits = 3

// FormatNumber formats n with the locale's separators.
//
// The default style keeps up to three fraction digits, "percent" multiplies
// by 100 and drops the fraction, "integer" rounds half away from zero.
func (l *Locale) FormatNumber(n float64, style string) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	switch style {
	case StylePercent:
		return l.trans.FmtPercent(math.Round(n*100), 0)
	case StyleInteger:
		return l.trans.FmtNumber(math.Round(n), 0)
	default:
		return l.trans.FmtNumber(n, uint64(fractionDigits(n)))
	}
}

// FormatDate formats the date part of t. The default style is "medium".
func (l *Locale) FormatDate(t time.Time, style string) string {
	switch style {
	case StyleShort:
		return l.trans.FmtDateShort(t)
	case StyleLong:
		return l.trans.FmtDateLong(t)
	case StyleFull:
		return l.trans.FmtDateFull(t)
	default:
		return l.trans.FmtDateMedium(t)
	}
}

// FormatTime formats the time-of-day part of t. The default style is "medium".
func (l *Locale) FormatTime(t time.Time, style string) string {
	switch style {
	case StyleShort:
		return l.trans.FmtTimeShort(t)
	case StyleLong:
		return l.trans.FmtTimeLong(t)
	case StyleFull:
		return l.trans.FmtTimeFull(t)
	default:
		return l.trans.FmtTimeMedium(t)
	}
}

// fractionDigits returns how many fraction digits n needs once rounded to
// maxFractionDigits, ignoring trailing zeros.
func fractionDigits(n float64) int {
	s := strconv.FormatFloat(math.Abs(n), 'f', maxFractionDigits, 64)
	s = strings.TrimRight(s, "0")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
