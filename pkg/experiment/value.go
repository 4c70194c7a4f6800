/*
 *     Copyright 2026 The Mltrack Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package experiment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the tag of a metric value.
type Kind int

const (
	// KindAbsent is a metric that was not computable for a run, stored as json null.
	KindAbsent Kind = iota

	// KindNumber is a finite float or integer metric.
	KindNumber

	// KindText is a free-form string metric. It never takes part in aggregation.
	KindText

	// KindOther is a boolean, object or array metric kept as raw json for display.
	// It never takes part in aggregation.
	KindOther
)

// String returns the name of kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged metric value.
type Value struct {
	kind    Kind
	number  float64
	integer bool
	text    string
	raw     json.RawMessage
}

// Float returns a float metric value.
func Float(f float64) Value {
	return Value{kind: KindNumber, number: f}
}

// Int returns an integer metric value.
func Int(i int64) Value {
	return Value{kind: KindNumber, number: float64(i), integer: true}
}

// Text returns a text metric value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Other returns a metric value holding raw json that is neither null, a number nor a string.
func Other(raw json.RawMessage) Value {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err == nil {
		raw = compact.Bytes()
	}

	return Value{kind: KindOther, raw: raw}
}

// Absent returns a null metric value.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// Kind returns the tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool {
	return v.kind == KindNumber
}

// IsAbsent reports whether v is null.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// IsInteger reports whether v holds an integer number.
func (v Value) IsInteger() bool {
	return v.kind == KindNumber && v.integer
}

// Number returns the numeric value and whether v is a number.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	return v.number, true
}

// TextValue returns the text value and whether v is text.
func (v Value) TextValue() (string, bool) {
	if v.kind != KindText {
		return "", false
	}

	return v.text, true
}

// String formats v for human readable output, floats use four decimals.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		if v.integer {
			return strconv.FormatInt(int64(v.number), 10)
		}
		return strconv.FormatFloat(v.number, 'f', 4, 64)
	case KindText:
		return v.text
	case KindOther:
		return string(v.raw)
	default:
		return "null"
	}
}

// MarshalJSON keeps integers as integers and floats as floats.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.number) || math.IsInf(v.number, 0) {
			return nil, fmt.Errorf("metric value %v is not finite", v.number)
		}

		if v.integer {
			return []byte(strconv.FormatInt(int64(v.number), 10)), nil
		}

		s := strconv.FormatFloat(v.number, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return []byte(s), nil
	case KindText:
		return json.Marshal(v.text)
	case KindOther:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, numbers and strings, booleans, objects and
// arrays are kept raw as KindOther.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty metric value")
	}

	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("invalid metric value %s", data)
		}
		*v = Absent()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case 't', 'f', '{', '[':
		if !json.Valid(data) {
			return fmt.Errorf("invalid metric value %s", data)
		}
		*v = Other(append(json.RawMessage(nil), data...))
		return nil
	}

	s := string(data)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			*v = Int(i)
			return nil
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid metric value %s: %w", data, err)
	}
	*v = Float(f)
	return nil
}
