package cloud_test

import (
	"fmt"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/keyword"
)

func ExampleBuilder_Build() {
	b := cloud.NewBuilder(cloud.WithSampler(cloud.NewSampler(1)))
	labels := b.Build([]keyword.Keyword{
		{Word: "economy", Weight: 1.0},
		{Word: "sports", Weight: 0.0},
	})

	for _, l := range labels {
		fmt.Printf("%s size=%.1f color=%s r=%.1f\n", l.Word, l.Size, l.Color.CSS(), l.Position.Norm())
	}
	// Output:
	// economy size=1.6 color=rgb(236, 72, 153) r=4.0
	// sports size=0.4 color=rgb(99, 102, 241) r=4.0
}

func ExampleGradient_At() {
	fmt.Println(cloud.DefaultGradient.At(-1).Hex())
	fmt.Println(cloud.DefaultGradient.At(0.5).Hex())
	fmt.Println(cloud.DefaultGradient.At(2).Hex())
	// Output:
	// #6366f1
	// #a857c5
	// #ec4899
}
