package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decimal is a monetary amount. It is written to Mongo as Decimal128 and
// rendered in JSON as a bare number.
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(value decimal.Decimal) Decimal {
	return Decimal{Decimal: value}
}

// ParseDecimal parses the textual form accepted by the product form fields.
func ParseDecimal(value string) (Decimal, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Decimal: parsed}, nil
}

// UnmarshalBSONValue accepts the numeric encodings older documents used
// (double, int32, int64, numeric string) as well as Decimal128.
func (d *Decimal) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		d.Decimal = decimal.Zero
		return nil
	case bsontype.Double:
		var value float64
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		d.Decimal = decimal.NewFromFloat(value)
		return nil
	case bsontype.Int32:
		var value int32
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		d.Decimal = decimal.NewFromInt32(value)
		return nil
	case bsontype.Int64:
		var value int64
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		d.Decimal = decimal.NewFromInt(value)
		return nil
	case bsontype.Decimal128:
		var value primitive.Decimal128
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		parsed, err := decimal.NewFromString(value.String())
		if err != nil {
			return fmt.Errorf("cannot decode decimal128 %s: %w", value.String(), err)
		}
		d.Decimal = parsed
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			d.Decimal = decimal.Zero
			return nil
		}
		parsed, err := ParseDecimal(value)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot decode %s into Decimal", t)
	}
}

func (d Decimal) MarshalBSONValue() (bsontype.Type, []byte, error) {
	value, err := primitive.ParseDecimal128(d.Decimal.String())
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(value)
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.String()), nil
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	return d.Decimal.UnmarshalJSON(data)
}
