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

package training

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"golang.org/x/exp/maps"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mltrack/mltrack/pkg/experiment"
)

// reportDigits is the precision of the text report.
const reportDigits = 2

// Evaluation is the validation result of a fitted classifier.
type Evaluation struct {
	// Accuracy is the share of correctly predicted rows.
	Accuracy float64

	// F1Macro is the unweighted mean of per-class f1 over the union of true and
	// predicted labels, absent when the reference labels hold a single class.
	F1Macro experiment.Value

	// NVal is the number of validation rows.
	NVal int

	// Classes are the per-class scores sorted by class.
	Classes []ClassScore

	// Report is the per-class text report.
	Report string
}

// ClassScore is the precision, recall and f1 of one class.
type ClassScore struct {
	Class     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluate scores the predicted classes of pred against the classes of ref.
func Evaluate(ref, pred base.FixedDataGrid) (*Evaluation, error) {
	_, rows := ref.Size()
	if rows == 0 {
		return nil, errors.New("no validation rows")
	}

	cm, err := evaluation.GetConfusionMatrix(ref, pred)
	if err != nil {
		return nil, err
	}

	classes := labels(cm)
	scores := make([]ClassScore, len(classes))
	for i, class := range classes {
		tp := evaluation.GetTruePositives(class, cm)
		fp := evaluation.GetFalsePositives(class, cm)
		fn := evaluation.GetFalseNegatives(class, cm)

		precision := divide(tp, tp+fp)
		recall := divide(tp, tp+fn)
		scores[i] = ClassScore{
			Class:     class,
			Precision: precision,
			Recall:    recall,
			F1:        divide(2*precision*recall, precision+recall),
			Support:   int(tp + fn),
		}
	}

	e := &Evaluation{
		Accuracy: evaluation.GetAccuracy(cm),
		F1Macro:  experiment.Absent(),
		NVal:     rows,
		Classes:  scores,
	}

	// Reference classes are the keys of the confusion matrix.
	if len(cm) > 1 {
		e.F1Macro = experiment.Float(macro(scores).F1)
	}

	e.Report = report(scores, e.Accuracy, rows)
	return e, nil
}

// labels returns the union of reference and predicted classes, sorted.
func labels(cm evaluation.ConfusionMatrix) []string {
	seen := sets.NewString()
	for ref, predicted := range cm {
		seen.Insert(ref)
		seen.Insert(maps.Keys(predicted)...)
	}

	return seen.List()
}

func macro(scores []ClassScore) ClassScore {
	avg := ClassScore{Class: "macro avg"}
	for _, s := range scores {
		avg.Precision += s.Precision
		avg.Recall += s.Recall
		avg.F1 += s.F1
		avg.Support += s.Support
	}

	n := float64(len(scores))
	avg.Precision /= n
	avg.Recall /= n
	avg.F1 /= n
	return avg
}

func weighted(scores []ClassScore) ClassScore {
	avg := ClassScore{Class: "weighted avg"}
	for _, s := range scores {
		w := float64(s.Support)
		avg.Precision += s.Precision * w
		avg.Recall += s.Recall * w
		avg.F1 += s.F1 * w
		avg.Support += s.Support
	}

	total := float64(avg.Support)
	avg.Precision = divide(avg.Precision, total)
	avg.Recall = divide(avg.Recall, total)
	avg.F1 = divide(avg.F1, total)
	return avg
}

// report renders the per-class table followed by accuracy, macro and weighted averages.
func report(scores []ClassScore, accuracy float64, rows int) string {
	width := len("weighted avg")
	for _, s := range scores {
		if len(s.Class) > width {
			width = len(s.Class)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	line := func(s ClassScore) {
		fmt.Fprintf(&b, "%*s %9.*f %9.*f %9.*f %9d\n", width, s.Class,
			reportDigits, s.Precision, reportDigits, s.Recall, reportDigits, s.F1, s.Support)
	}

	for _, s := range scores {
		line(s)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s %9s %9s %9.*f %9d\n", width, "accuracy", "", "", reportDigits, accuracy, rows)
	line(macro(scores))
	line(weighted(scores))
	return b.String()
}

func divide(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return a / b
}
