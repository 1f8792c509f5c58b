package config

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDailyFileFormat is the date pattern used for daily file names.
const DefaultDailyFileFormat = "yyyy-MM-dd"

// FormatDate renders t using a Unicode date pattern such as "yyyy-MM-dd" or
// "EEEE, d MMM yyyy". Letters outside the supported set are copied through
// verbatim, text between single quotes is literal and '' is a quote.
// Formatting never fails; a nonsensical pattern just yields nonsensical text.
func FormatDate(pattern string, t time.Time) string {
	var b strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		r := runes[i]

		if r == '\'' {
			// '' is an escaped quote
			if i+1 < len(runes) && runes[i+1] == '\'' {
				b.WriteRune('\'')
				i += 2
				continue
			}
			j := i + 1
			for j < len(runes) {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						b.WriteRune('\'')
						j += 2
						continue
					}
					break
				}
				b.WriteRune(runes[j])
				j++
			}
			i = j + 1
			continue
		}

		if !isPatternLetter(r) {
			b.WriteRune(r)
			i++
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == r {
			n++
		}
		b.WriteString(formatField(r, n, t))
		i += n
	}

	return b.String()
}

func isPatternLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func formatField(letter rune, count int, t time.Time) string {
	switch letter {
	case 'y', 'Y', 'u':
		year := t.Year()
		if count == 2 {
			return pad(year%100, 2)
		}
		return pad(year, count)
	case 'M', 'L':
		switch {
		case count >= 4:
			return t.Month().String()
		case count == 3:
			return t.Month().String()[:3]
		default:
			return pad(int(t.Month()), count)
		}
	case 'd':
		return pad(t.Day(), count)
	case 'D':
		return pad(t.YearDay(), count)
	case 'E':
		if count >= 4 {
			return t.Weekday().String()
		}
		return t.Weekday().String()[:3]
	case 'H':
		return pad(t.Hour(), count)
	case 'k':
		h := t.Hour()
		if h == 0 {
			h = 24
		}
		return pad(h, count)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, count)
	case 'K':
		return pad(t.Hour()%12, count)
	case 'm':
		return pad(t.Minute(), count)
	case 's':
		return pad(t.Second(), count)
	case 'a':
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case 'w':
		_, week := t.ISOWeek()
		return pad(week, count)
	case 'Q', 'q':
		return strconv.Itoa((int(t.Month())-1)/3 + 1)
	}
	return strings.Repeat(string(letter), count)
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// dailyFileName turns a date pattern into a usable file name (without
// extension). Path separators are flattened and an empty result falls back
// to the default pattern, so the resolver always produces a real file name.
func dailyFileName(pattern string, t time.Time) string {
	name := sanitizeFileName(FormatDate(pattern, t))
	if name == "" {
		name = FormatDate(DefaultDailyFileFormat, t)
	}
	return name
}

func sanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '-'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	// "." and ".." would resolve to the folder itself
	if strings.Trim(name, ".") == "" {
		return ""
	}
	return name
}
