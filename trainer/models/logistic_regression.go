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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sjwhitworth/golearn/base"
	"golang.org/x/time/rate"
	"k8s.io/apimachinery/pkg/util/sets"

	logger "github.com/mltrack/mltrack/internal/mtlog"
)

const (
	// DefaultLearningRate is the default gradient descent step.
	DefaultLearningRate = 0.1

	// DefaultTolerance stops gradient descent once every gradient component is below it.
	DefaultTolerance = 1e-4

	// initScale is the standard deviation of the initial weights.
	initScale = 0.01

	// progressInterval is the minimum interval between gradient descent progress logs.
	progressInterval = time.Second
)

// LogisticRegression is a multinomial logistic regression fitted by batch gradient descent.
type LogisticRegression struct {
	LearningRate  float64     `json:"learning_rate" mapstructure:"learning_rate"`
	MaxIterations int         `json:"max_iterations" mapstructure:"max_iterations"`
	Tolerance     float64     `json:"tolerance" mapstructure:"tolerance"`
	Seed          int64       `json:"seed" mapstructure:"seed"`
	Fitted        bool        `json:"fitted" mapstructure:"fitted"`
	Iterations    int         `json:"iterations" mapstructure:"iterations"`
	Classes       []string    `json:"classes" mapstructure:"classes"`
	Features      []string    `json:"features" mapstructure:"features"`
	Intercepts    []float64   `json:"intercepts" mapstructure:"intercepts"`
	Weights       [][]float64 `json:"weights" mapstructure:"weights"`
}

// NewLogisticRegression return an instance of logistic regression model.
func NewLogisticRegression(learningRate float64, maxIterations int, seed int64) *LogisticRegression {
	return &LogisticRegression{
		LearningRate:  learningRate,
		MaxIterations: maxIterations,
		Tolerance:     DefaultTolerance,
		Seed:          seed,
	}
}

// Fit trains the model on the float attributes of inst against its categorical class attribute.
func (lr *LogisticRegression) Fit(inst base.FixedDataGrid) error {
	if lr.MaxIterations <= 0 {
		return errors.New("max iterations must be positive")
	}

	classAttrs := inst.AllClassAttributes()
	if len(classAttrs) != 1 {
		return errors.New("only 1 class variable is permitted")
	}

	attrs := base.NonClassFloatAttributes(inst)
	attrSpecs := base.ResolveAttributes(inst, attrs)
	_, rows := inst.Size()
	if rows == 0 {
		return errors.New("no rows to fit")
	}

	x := make([][]float64, rows)
	labels := make([]string, rows)
	err := inst.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		x[i] = make([]float64, len(row))
		for j, r := range row {
			x[i][j] = base.UnpackBytesToFloat(r)
		}
		labels[i] = base.GetClass(inst, i)
		return true, nil
	})
	if err != nil {
		return err
	}

	lr.Classes = distinct(labels)
	lr.Features = make([]string, len(attrs))
	for i, a := range attrs {
		lr.Features[i] = a.GetName()
	}

	classIndex := make(map[string]int, len(lr.Classes))
	for k, c := range lr.Classes {
		classIndex[c] = k
	}
	y := make([]int, rows)
	for i, l := range labels {
		y[i] = classIndex[l]
	}

	lr.fit(x, y)
	lr.Fitted = true
	return nil
}

func (lr *LogisticRegression) fit(x [][]float64, y []int) {
	classes, features, rows := len(lr.Classes), len(lr.Features), len(x)
	rng := rand.New(rand.NewSource(lr.Seed))

	lr.Intercepts = make([]float64, classes)
	lr.Weights = make([][]float64, classes)
	for k := range lr.Weights {
		lr.Weights[k] = make([]float64, features)
		for j := range lr.Weights[k] {
			lr.Weights[k][j] = rng.NormFloat64() * initScale
		}
	}

	lr.Iterations = 0
	if classes < 2 {
		return
	}

	gradW := make([][]float64, classes)
	for k := range gradW {
		gradW[k] = make([]float64, features)
	}
	gradB := make([]float64, classes)
	probs := make([]float64, classes)
	progress := rate.NewLimiter(rate.Every(progressInterval), 1)

	for iter := 0; iter < lr.MaxIterations; iter++ {
		for k := range gradW {
			gradB[k] = 0
			for j := range gradW[k] {
				gradW[k][j] = 0
			}
		}

		for i, xi := range x {
			lr.probabilities(xi, probs)
			for k := range probs {
				d := probs[k]
				if y[i] == k {
					d -= 1
				}
				gradB[k] += d
				for j, v := range xi {
					gradW[k][j] += d * v
				}
			}
		}

		maxGrad := 0.0
		for k := range gradW {
			gradB[k] /= float64(rows)
			lr.Intercepts[k] -= lr.LearningRate * gradB[k]
			maxGrad = math.Max(maxGrad, math.Abs(gradB[k]))
			for j := range gradW[k] {
				gradW[k][j] /= float64(rows)
				lr.Weights[k][j] -= lr.LearningRate * gradW[k][j]
				maxGrad = math.Max(maxGrad, math.Abs(gradW[k][j]))
			}
		}

		lr.Iterations = iter + 1
		if progress.Allow() {
			logger.TrainLogger.Debugf("gradient descent iteration %d, max gradient %.6f", lr.Iterations, maxGrad)
		}

		if maxGrad < lr.Tolerance {
			break
		}
	}

	if lr.Iterations == lr.MaxIterations {
		logger.TrainLogger.Debugf("logistic regression reached max iterations %d", lr.MaxIterations)
	}
}

// probabilities writes the softmax of the class scores of xi to out.
func (lr *LogisticRegression) probabilities(xi []float64, out []float64) {
	maxScore := math.Inf(-1)
	for k := range lr.Weights {
		s := lr.Intercepts[k]
		for j, v := range xi {
			s += lr.Weights[k][j] * v
		}
		out[k] = s
		maxScore = math.Max(maxScore, s)
	}

	sum := 0.0
	for k := range out {
		out[k] = math.Exp(out[k] - maxScore)
		sum += out[k]
	}

	for k := range out {
		out[k] /= sum
	}
}

// Predict use parameters of model to predict the data provided.
func (lr *LogisticRegression) Predict(X base.FixedDataGrid) (base.FixedDataGrid, error) {
	if !lr.Fitted {
		logger.Info("no fitted model")
		return nil, errors.New("no fitted model")
	}

	attrSpecs := make([]base.AttributeSpec, len(lr.Features))
	for i, name := range lr.Features {
		spec, err := X.GetAttribute(base.NewFloatAttribute(name))
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", name, err)
		}
		attrSpecs[i] = spec
	}

	ret := base.GeneratePredictionVector(X)
	probs := make([]float64, len(lr.Classes))
	xi := make([]float64, len(lr.Features))
	err := X.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		for j, r := range row {
			xi[j] = base.UnpackBytesToFloat(r)
		}

		lr.probabilities(xi, probs)
		best := 0
		for k := 1; k < len(probs); k++ {
			if probs[k] > probs[best] {
				best = k
			}
		}

		base.SetClass(ret, i, lr.Classes[best])
		return true, nil
	})
	if err != nil {
		logger.Infof("LogisticRegression error happens, error is %v", err)
		return nil, err
	}

	return ret, nil
}

func (lr *LogisticRegression) String() string {
	return fmt.Sprintf("LogisticRegression(classes=%d, features=%d, iterations=%d)", len(lr.Classes), len(lr.Features), lr.Iterations)
}

func (lr *LogisticRegression) UnmarshalJSON(data []byte) error {
	var d map[string]interface{}
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	type plain LogisticRegression
	var p plain
	if err := mapstructure.Decode(d, &p); err != nil {
		return err
	}

	*lr = LogisticRegression(p)
	return nil
}

func distinct(values []string) []string {
	return sets.NewString(values...).List()
}
