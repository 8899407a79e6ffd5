package store_dynamodb

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/playground-api/internal/errors"
)

// DateLayout is the fixed storage format of every date attribute,
// e.g. "25/12/2022 13:45:00-03:00".
const DateLayout = "02/01/2006 15:04:05-07:00"

// DecodeError reports a row that does not match the account schema.
type DecodeError struct {
	RowId     string
	Attribute string
	Err       error
}

func (e *DecodeError) Error() string {
	if e.RowId == "" {
		return fmt.Sprintf("error decoding attribute %s: %s", e.Attribute, e.Err.Error())
	}
	return fmt.Sprintf("error decoding account %s: attribute %s: %s", e.RowId, e.Attribute, e.Err.Error())
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// The Extract* functions return ok=false when key is absent or holds NULL.
// A present value of the wrong type is a *DecodeError.

func ExtractString(key string, item map[string]types.AttributeValue) (string, bool, error) {
	value, ok := lookup(key, item)
	if !ok {
		return "", false, nil
	}
	s, ok := value.(*types.AttributeValueMemberS)
	if !ok {
		return "", true, typeError(key, "S", value)
	}
	return s.Value, true, nil
}

func ExtractNumber(key string, item map[string]types.AttributeValue) (float64, bool, error) {
	value, ok := lookup(key, item)
	if !ok {
		return 0, false, nil
	}
	n, ok := value.(*types.AttributeValueMemberN)
	if !ok {
		return 0, true, typeError(key, "N", value)
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0, true, &DecodeError{Attribute: key, Err: fmt.Errorf("%w: %q is not a number", errors.ErrAttributeType, n.Value)}
	}
	return f, true, nil
}

func ExtractBool(key string, item map[string]types.AttributeValue) (bool, bool, error) {
	value, ok := lookup(key, item)
	if !ok {
		return false, false, nil
	}
	b, ok := value.(*types.AttributeValueMemberBOOL)
	if !ok {
		return false, true, typeError(key, "BOOL", value)
	}
	return b.Value, true, nil
}

func ExtractList(key string, item map[string]types.AttributeValue) ([]types.AttributeValue, bool, error) {
	value, ok := lookup(key, item)
	if !ok {
		return nil, false, nil
	}
	l, ok := value.(*types.AttributeValueMemberL)
	if !ok {
		return nil, true, typeError(key, "L", value)
	}
	return l.Value, true, nil
}

func ExtractMap(key string, item map[string]types.AttributeValue) (map[string]types.AttributeValue, bool, error) {
	value, ok := lookup(key, item)
	if !ok {
		return nil, false, nil
	}
	m, ok := value.(*types.AttributeValueMemberM)
	if !ok {
		return nil, true, typeError(key, "M", value)
	}
	return m.Value, true, nil
}

// ParseDate parses a stored date using DateLayout.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", errors.ErrInvalidDate, value, DateLayout)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func lookup(key string, item map[string]types.AttributeValue) (types.AttributeValue, bool) {
	value, ok := item[key]
	if !ok || value == nil {
		return nil, false
	}
	if _, isNull := value.(*types.AttributeValueMemberNULL); isNull {
		return nil, false
	}
	return value, true
}

func typeError(key string, expected string, value types.AttributeValue) error {
	return &DecodeError{
		Attribute: key,
		Err:       fmt.Errorf("%w: expected %s, got %s", errors.ErrAttributeType, expected, attributeTypeName(value)),
	}
}

func attributeTypeName(value types.AttributeValue) string {
	switch value.(type) {
	case *types.AttributeValueMemberS:
		return "S"
	case *types.AttributeValueMemberN:
		return "N"
	case *types.AttributeValueMemberBOOL:
		return "BOOL"
	case *types.AttributeValueMemberL:
		return "L"
	case *types.AttributeValueMemberM:
		return "M"
	case *types.AttributeValueMemberB:
		return "B"
	case *types.AttributeValueMemberSS:
		return "SS"
	case *types.AttributeValueMemberNS:
		return "NS"
	case *types.AttributeValueMemberBS:
		return "BS"
	default:
		return fmt.Sprintf("%T", value)
	}
}
