package value

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kustoclient/kustoclient/types"
)

// Timespan represents a Kusto timespan type: a duration with 100ns ("tick")
// resolution, serialized as [-][d.]HH:MM:SS[.fffffff]. Timespan implements
// Kusto.
type Timespan struct {
	pointerValue[time.Duration]
}

func NewTimespan(v time.Duration) *Timespan { return &Timespan{newPointerValue[time.Duration](&v)} }

func NewNullTimespan() *Timespan { return &Timespan{newPointerValue[time.Duration](nil)} }

var durationRE = regexp.MustCompile(`^(?P<neg>-)?((?P<days>\d+)\.)?(?P<hours>\d+):(?P<minutes>\d+):(?P<seconds>\d+)(\.(?P<nanos>\d+))?$`)

// String implements fmt.Stringer.
func (t *Timespan) String() string {
	if t.value == nil {
		return ""
	}
	return formatDuration(*t.value)
}

// Marshal marshals the Timespan into a Kusto-compatible string.
func (t *Timespan) Marshal() string {
	if t.value == nil {
		return formatDuration(0)
	}
	return formatDuration(*t.value)
}

// Unmarshal unmarshals i into Timespan. i must be a string in Kusto's
// timespan wire format or nil.
func (t *Timespan) Unmarshal(i interface{}) error {
	if i == nil {
		t.value = nil
		return nil
	}

	s, ok := i.(string)
	if !ok {
		return fmt.Errorf("column with type 'timespan' had value that was %T", i)
	}

	d, err := parseDuration(s)
	if err != nil {
		return parseError(t, i, err)
	}
	t.value = &d
	return nil
}

// Convert Timespan into a reflect value.
func (t *Timespan) Convert(v reflect.Value) error {
	if !TryConvert[time.Duration](t, &t.pointerValue, v, nil) {
		return fmt.Errorf("column with type 'timespan' had value that was %T", v)
	}
	return nil
}

// GetType returns the type of the value.
func (*Timespan) GetType() types.Column {
	return types.Timespan
}

func parseDuration(s string) (time.Duration, error) {
	m := durationRE.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q is not a valid Kusto timespan", s)
	}

	group := func(name string) string {
		for i, n := range durationRE.SubexpNames() {
			if n == name {
				return m[i]
			}
		}
		return ""
	}

	neg := group("neg") != ""
	days := parseSegment(group("days"))
	hours := parseSegment(group("hours"))
	minutes := parseSegment(group("minutes"))
	seconds := parseSegment(group("seconds"))

	var ticks int64
	if nanos := group("nanos"); nanos != "" {
		v, err := strconv.ParseInt(nanos, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse fractional seconds %q: %s", nanos, err)
		}
		ticks = v
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(ticks)*100*time.Nanosecond

	if neg {
		d = -d
	}
	return d, nil
}

func parseSegment(s string) int64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func formatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}

	totalDays := int64(d / (24 * time.Hour))
	rem := d % (24 * time.Hour)
	hours := int64(rem / time.Hour)
	rem %= time.Hour
	minutes := int64(rem / time.Minute)
	rem %= time.Minute
	seconds := int64(rem / time.Second)
	rem %= time.Second
	ticks := int64(rem / (100 * time.Nanosecond))

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	if totalDays > 0 {
		fmt.Fprintf(&sb, "%d.", totalDays)
	}
	fmt.Fprintf(&sb, "%02d:%02d:%02d.%07d", hours, minutes, seconds, ticks)
	return sb.String()
}
