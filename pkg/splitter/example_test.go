package splitter_test

import (
	"context"
	"fmt"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/jsast"
	"github.com/specvital/splitter/pkg/parser/strategies/shared/jstest"
	"github.com/specvital/splitter/pkg/splitter"
)

func ExampleExtractOne() {
	ctx := context.Background()
	source := []byte(`describe('math', () => {
  it('adds', () => {});
  it('subtracts', () => {});
});
`)
	markers := jstest.JasmineStyleMarkers()

	tree, err := jsast.Parse(ctx, domain.LanguageTypeScript, source)
	if err != nil {
		fmt.Println(err)
		return
	}
	leaves := splitter.FindLeaves(tree.Root(), markers)

	result, err := splitter.ExtractOne(ctx, source, domain.LanguageTypeScript, leaves[1], markers)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(string(result.Source))
	// Output:
	// describe('math', () => {
	//   it('subtracts', () => {});
	// });
}

func ExampleOutputName() {
	fmt.Println(splitter.OutputName("login.spec.ts", "", 3))
	fmt.Println(splitter.OutputName("login.spec.ts", "-", 3))
	// Output:
	// login3.spec.ts
	// login-3.spec.ts
}
