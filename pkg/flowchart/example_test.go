package flowchart_test

import (
	"fmt"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
)

func ExampleParse() {
	g := flowchart.Parse(`flowchart LR
    A[Start] --> B{Valid?}
    B -->|yes| C((Done))
    B -.-> D`)

	fmt.Println("Direction:", g.Direction)
	for _, n := range g.Nodes {
		fmt.Printf("%s %s %q\n", n.ID, n.Type, n.Text)
	}
	for _, e := range g.Edges {
		fmt.Printf("%s->%s %s %q\n", e.From, e.To, e.Style, e.Label)
	}
	// Output:
	// Direction: LR
	// A rectangle "Start"
	// B diamond "Valid?"
	// C circle "Done"
	// D rectangle "D"
	// A->B solid ""
	// B->C solid "yes"
	// B->D dotted ""
}

func ExampleParse_subgraph() {
	g := flowchart.Parse(`graph TD
    subgraph "Backend"
        API --> DB[(Database)]
    end
    Web --> API`)

	sg := g.Subgraphs[0]
	fmt.Println(sg.Title, sg.Nodes)
	// Output:
	// Backend [DB API]
}
