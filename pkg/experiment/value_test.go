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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mltrack/mltrack/internal/mterrors"
)

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		expect func(t *testing.T, data []byte, err error)
	}{
		{
			name:  "integer",
			value: Int(42),
			expect: func(t *testing.T, data []byte, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("42", string(data))
			},
		},
		{
			name:  "float with fraction",
			value: Float(0.8125),
			expect: func(t *testing.T, data []byte, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("0.8125", string(data))
			},
		},
		{
			name:  "whole float keeps its decimal point",
			value: Float(1),
			expect: func(t *testing.T, data []byte, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("1.0", string(data))
			},
		},
		{
			name:  "text",
			value: Text("baseline"),
			expect: func(t *testing.T, data []byte, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(`"baseline"`, string(data))
			},
		},
		{
			name:  "absent",
			value: Absent(),
			expect: func(t *testing.T, data []byte, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("null", string(data))
			},
		},
		{
			name:  "not finite",
			value: Float(math.NaN()),
			expect: func(t *testing.T, data []byte, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.value)
			tc.expect(t, data, err)
		})
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		expect func(t *testing.T, v Value, err error)
	}{
		{
			name: "integer stays integer",
			data: "12",
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(v.IsInteger())
				assert.Equal(Int(12), v)
			},
		},
		{
			name: "float",
			data: "0.9",
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.False(v.IsInteger())
				n, ok := v.Number()
				assert.True(ok)
				assert.Equal(0.9, n)
			},
		},
		{
			name: "exponent is float",
			data: "1e-3",
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(Float(0.001), v)
			},
		},
		{
			name: "null",
			data: "null",
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(v.IsAbsent())
			},
		},
		{
			name: "string",
			data: `"n/a"`,
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				s, ok := v.TextValue()
				assert.True(ok)
				assert.Equal("n/a", s)
				assert.Equal(KindText, v.Kind())
			},
		},
		{
			name: "bool is kept raw",
			data: "true",
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(KindOther, v.Kind())
				assert.Equal("true", v.String())
				_, ok := v.Number()
				assert.False(ok)
			},
		},
		{
			name: "object is kept raw",
			data: `{"a": 1, "b": [1, 2]}`,
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(KindOther, v.Kind())
				assert.Equal(`{"a":1,"b":[1,2]}`, v.String())

				data, err := json.Marshal(v)
				assert.NoError(err)
				assert.JSONEq(`{"a":1,"b":[1,2]}`, string(data))
			},
		},
		{
			name: "array is kept raw",
			data: `[0.9, 0.8]`,
			expect: func(t *testing.T, v Value, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(KindOther, v.Kind())
				assert.False(v.IsNumber())
				assert.False(v.IsAbsent())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v Value
			err := json.Unmarshal([]byte(tc.data), &v)
			tc.expect(t, v, err)
		})
	}
}

func TestValue_String(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("0.8000", Float(0.8).String())
	assert.Equal("7", Int(7).String())
	assert.Equal("null", Absent().String())
	assert.Equal("x", Text("x").String())
	assert.Equal("number", KindNumber.String())
}

func TestMetrics_JSONRoundTrip(t *testing.T) {
	assert := assert.New(t)
	metrics := Metrics{
		MetricAccuracy:     Float(0.85),
		MetricF1Macro:      Absent(),
		MetricNVal:         Int(20),
		MetricNTrain:       Int(80),
		MetricTrainSeconds: Float(0.25),
		"note":             Text("baseline"),
	}

	data, err := json.Marshal(metrics)
	assert.NoError(err)
	assert.Equal(`{"accuracy":0.85,"f1_macro":null,"n_train":80,"n_val":20,"note":"baseline","train_seconds":0.25}`, string(data))

	var decoded Metrics
	assert.NoError(json.Unmarshal(data, &decoded))
	assert.Equal(metrics, decoded)
}

func TestMetrics_Helpers(t *testing.T) {
	assert := assert.New(t)
	metrics := Metrics{"b": Float(1), "a": Text("x")}

	assert.Equal([]string{"a", "b"}, metrics.Names())

	n, ok := metrics.Number("b")
	assert.True(ok)
	assert.Equal(1.0, n)

	_, ok = metrics.Number("a")
	assert.False(ok)

	_, ok = metrics.Number("missing")
	assert.False(ok)

	merged := metrics.Merge(Metrics{"c": Int(3)})
	assert.Len(merged, 3)
	assert.Len(metrics, 2)

	assert.Equal(Metrics{"b": Float(1)}, metrics.Without("a"))
}

func TestTrainConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config TrainConfig
		expect func(t *testing.T, err error)
	}{
		{
			name: "valid config",
			config: TrainConfig{
				InputPath:          "data.csv",
				LabelColumn:        "label",
				ValidationFraction: 0.2,
				RandomSeed:         42,
				MaxIterations:      200,
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name: "missing label column",
			config: TrainConfig{
				InputPath:          "data.csv",
				ValidationFraction: 0.2,
				MaxIterations:      200,
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(mterrors.IsConfigError(err))
			},
		},
		{
			name: "validation fraction out of range",
			config: TrainConfig{
				InputPath:          "data.csv",
				LabelColumn:        "label",
				ValidationFraction: 1,
				MaxIterations:      200,
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(mterrors.IsConfigError(err))
			},
		},
		{
			name: "zero iterations",
			config: TrainConfig{
				InputPath:          "data.csv",
				LabelColumn:        "label",
				ValidationFraction: 0.2,
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(mterrors.IsConfigError(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, tc.config.Validate())
		})
	}
}
