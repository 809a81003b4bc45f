package frames

import "github.com/kustoclient/kustoclient/errors"

// ToErr turns a frame's OneApiErrors list into a single chained *errors.Error,
// mirroring the classification errors.OneToErr applies to REST error bodies:
// the first entry becomes the outer error, the second (if any) is chained as
// its cause.
func ToErr(list []OneApiError, op errors.Op) *errors.Error {
	if len(list) == 0 {
		return nil
	}

	first := errors.ES(op, kindForCode(list[0].Error.Code), "%s", list[0].Error.Message)
	if len(list) == 1 {
		return first
	}
	second := errors.ES(op, kindForCode(list[1].Error.Code), "%s", list[1].Error.Message)
	return errors.W(second, first)
}

func kindForCode(code string) errors.Kind {
	switch code {
	case "LimitsExceeded":
		return errors.KLimitsExceeded
	default:
		return errors.KOther
	}
}
