package format

import (
	"github.com/eliaskosunen/scn-go/internal/arg"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// ValidateForKind checks a field's presentation type against the kind of
// the argument it was matched to, per spec.md §4.2 ("Validates specs
// against the matched argument's kind"). TypeNone is always valid — it
// means "infer from the argument", spec.md §3's "none" entry.
func ValidateForKind(k arg.Kind, s Specs) *scnerr.Error {
	if s.Type == TypeNone {
		return nil
	}
	switch k {
	case arg.KindInt8, arg.KindInt16, arg.KindInt32, arg.KindInt64, arg.KindInt,
		arg.KindUint8, arg.KindUint16, arg.KindUint32, arg.KindUint64, arg.KindUint:
		if s.Type.IsIntType() || s.Type == TypeCharacter || s.Type == TypeEscapedCharacter {
			return nil
		}
	case arg.KindFloat32, arg.KindFloat64:
		if s.Type.IsFloatType() {
			return nil
		}
	case arg.KindBool:
		// bool has no dedicated letter; only default is well-formed.
		return scnerr.New(scnerr.CodeInvalidFormatString, "bad presentation type for boolean")
	case arg.KindString, arg.KindStringView:
		if s.Type == TypeCharacter && !s.HasWidth {
			return scnerr.New(scnerr.CodeInvalidFormatString, "'c' type specifier for strings requires the field width to be specified")
		}
		if s.Type.IsStringType() || s.Type == TypeCharacter || s.Type == TypeEscapedCharacter {
			return nil
		}
	case arg.KindBytes:
		if s.Type.IsStringType() {
			return nil
		}
	case arg.KindPointer:
		if s.Type == TypePointer {
			return nil
		}
	case arg.KindCustom:
		return nil
	}
	return scnerr.Newf(scnerr.CodeInvalidFormatString, "presentation type not valid for %s argument", k)
}
