// Package codec converts licensee accounts to and from the pipe-delimited,
// hex-wrapped text stored by the Licensee contract.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"licensing/internal/licensee/models"
	dErrors "licensing/pkg/domain-errors"
)

// Delimiter separates the encoded segments.
const Delimiter = "|"

// noCompany is the second spelling of an absent company, next to "".
const noCompany = "None"

// ErrMalformedRecord is wrapped by every encode and decode failure.
var ErrMalformedRecord = errors.New("malformed licensee record")

var segmentNames = [...]string{
	"wallet_address",
	"name",
	"date_of_birth",
	"address",
	"email_address",
	"phone_number",
	"company",
	"nationality",
	"country_of_application",
}

const segmentCount = len(segmentNames)

// Encode joins the registration fields in their fixed order and hex-encodes the
// UTF-8 text with a 0x prefix.
func Encode(p models.RegistrationParams) (string, error) {
	if _, err := time.Parse(time.RFC3339, p.DateOfBirth); err != nil {
		return "", malformed(err, "date_of_birth is not an RFC3339 timestamp")
	}

	company := ""
	if p.Company != nil {
		company = *p.Company
	}
	segments := [segmentCount]string{
		p.WalletAddress,
		p.Name,
		p.DateOfBirth,
		p.Address,
		p.EmailAddress,
		p.PhoneNumber,
		company,
		p.Nationality,
		p.CountryOfApplication,
	}
	for i, seg := range segments {
		if strings.Contains(seg, Delimiter) {
			return "", malformed(nil, fmt.Sprintf("%s must not contain %q", segmentNames[i], Delimiter))
		}
	}

	return hexutil.Encode([]byte(strings.Join(segments[:], Delimiter))), nil
}

// Decode reverses Encode. Empty data, or a bare 0x, is the state of a wallet
// that never registered and yields the absent record rather than an error. The
// 0x prefix is optional. Whitespace is not trimmed.
func Decode(data []byte, usable bool) (*models.Licensee, error) {
	text := string(data)
	if text == "" || text == "0x" || text == "0X" {
		return models.Absent(), nil
	}
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}

	raw, err := hexutil.Decode(text)
	if err != nil {
		return nil, malformed(err, "licensee data is not valid hex")
	}
	if !utf8.Valid(raw) {
		return nil, malformed(nil, "licensee data is not valid UTF-8")
	}

	segments := strings.Split(string(raw), Delimiter)
	if len(segments) < segmentCount {
		return nil, malformed(nil, fmt.Sprintf("missing %s segment", segmentNames[len(segments)]))
	}
	if len(segments) > segmentCount {
		return nil, malformed(nil, fmt.Sprintf("unexpected segment after %s", segmentNames[segmentCount-1]))
	}

	dob, err := time.Parse(time.RFC3339, segments[2])
	if err != nil {
		return nil, malformed(err, "date_of_birth is not an RFC3339 timestamp")
	}

	var company *string
	if c := segments[6]; c != "" && c != noCompany {
		company = &c
	}

	return &models.Licensee{
		WalletAddress:        segments[0],
		Name:                 segments[1],
		DateOfBirth:          dob.UTC(),
		Address:              segments[3],
		EmailAddress:         segments[4],
		PhoneNumber:          segments[5],
		Company:              company,
		Nationality:          segments[7],
		CountryOfApplication: segments[8],
		Usable:               usable,
	}, nil
}

func malformed(cause error, msg string) error {
	err := ErrMalformedRecord
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrMalformedRecord, cause)
	}
	return dErrors.Wrap(err, dErrors.CodeValidation, msg)
}
