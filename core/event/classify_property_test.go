package event

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Extraction is a pure function of the summary text: repeated calls must
// agree exactly, on any input.
func TestExtractionDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("class extraction is deterministic", prop.ForAll(
		func(summary string) bool {
			return reflect.DeepEqual(ClassCodes(summary), ClassCodes(summary))
		},
		gen.AnyString(),
	))

	properties.Property("professor extraction is deterministic", prop.ForAll(
		func(summary string) bool {
			return reflect.DeepEqual(ProfessorNames(summary), ProfessorNames(summary))
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestClassCodesRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// realistic section codes: digit year then letters ("5A", "3CIIN")
	codeGen := gen.RegexMatch(`[1-5][A-Z]{1,4}`)

	properties.Property("announced codes are recovered uppercased", prop.ForAll(
		func(codes []string) bool {
			if len(codes) == 0 {
				return true
			}
			summary := "CLASSI " + strings.Join(codes, ", ") + " AULA 12"
			return reflect.DeepEqual(ClassCodes(summary), codes)
		},
		gen.SliceOf(codeGen),
	))

	properties.TestingRun(t)
}
