package eventgrid_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/textgrid"
)

func ExampleConverter_Convert() {
	log := `<events>
	<event sender="A" event="x" from="0" dur="150" state="completed"/>
	<event sender="A" event="y" from="150" dur="50" state="completed"/>
	<event sender="B" event="z" from="100" dur="100" state="continued"/>
</events>`

	conv := eventgrid.New(
		eventgrid.WithBoundMode(domain.BoundsAdd),
		eventgrid.WithRenderOptions(textgrid.WithFormat(textgrid.FormatShort)),
	)
	doc, stats, err := conv.Convert(context.Background(), strings.NewReader(log))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("tiers=%d intervals=%d skipped=%d\n", stats.Tiers, stats.Intervals, stats.Skipped)
	fmt.Print(conv.Render(doc))
	// Output:
	// tiers=1 intervals=2 skipped=1
	// File type = "ooTextFile"
	// Object class = "TextGrid"
	//
	// 0.000
	// 0.200
	// <exists>
	// 1
	// "IntervalTier"
	// "A"
	// 0.000
	// 0.200
	// 2
	// 0.000
	// 0.150
	// "x"
	// 0.150
	// 0.200
	// "y"
}
