package scan

import "strings"

// Fields are the structured values carried in a document's QR payload.
// All four are opaque strings; the service never validates or coerces them.
type Fields struct {
	CHAPA string
	CPF   string
	MES   string
	ANO   string
}

// ParsePayload splits a QR payload on '.' and maps positional segments to
// fields. Segment 0 carries an unidentified discriminator and is discarded.
// Values are used as-is: no trimming, no numeric coercion. Payloads with
// fewer than five segments yield no fields.
func ParsePayload(payload string) (Fields, bool) {
	segments := strings.Split(payload, ".")
	if len(segments) < 5 {
		return Fields{}, false
	}

	return Fields{
		CHAPA: segments[1],
		CPF:   segments[2],
		MES:   segments[3],
		ANO:   segments[4],
	}, true
}
