package extensions

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/m1gwings/treedrawer/tree"
	"github.com/nexusfabric/nexus"
)

// TopologyExtension renders an ASCII tree of every fused hook group and
// logs it at Error level whenever a submission or fusion fails, so a
// developer staring at a failure can see exactly which hooks were sharing a
// nexus at the time. Grounded on the teacher's GraphDebugExtension
// (extensions/graph_debug.go): same "dump the graph on error" intent,
// rendered with github.com/m1gwings/treedrawer instead of the teacher's
// hand-rolled └─>/├─> box-drawing, since the teacher already depends on
// treedrawer (go.mod) without ever calling it.
type TopologyExtension struct {
	nexus.BaseExtension
	logger *slog.Logger
	roots  []*nexus.Hook
}

// NewTopologyExtension builds a TopologyExtension that renders roots'
// fusion groups on failure.
func NewTopologyExtension(logger *slog.Logger, roots ...*nexus.Hook) *TopologyExtension {
	return &TopologyExtension{logger: logger, roots: roots}
}

func (e *TopologyExtension) AfterSubmit(op *nexus.SubmitOp) {
	if op.Err == nil {
		return
	}
	e.logger.Error("nexus: submit failed, dumping topology",
		slog.String("error", op.Err.Error()),
		slog.String("topology", e.render()),
	)
}

func (e *TopologyExtension) AfterFusion(a, b *nexus.Hook, err error) {
	if err == nil {
		return
	}
	e.logger.Error("nexus: fusion rejected, dumping topology",
		slog.String("error", err.Error()),
		slog.String("topology", e.render()),
	)
}

func (e *TopologyExtension) render() string {
	topo := nexus.Snapshot(e.roots)
	if len(topo.Groups) == 0 {
		return "(empty - no hooks registered)"
	}

	root := tree.NewTree(tree.NodeString("nexus topology"))
	for i, group := range topo.Groups {
		groupNode := root.AddChild(tree.NodeString("group " + strconv.Itoa(i)))
		for _, h := range group {
			groupNode.AddChild(tree.NodeString(fmt.Sprintf("hook %s", h.ID())))
		}
	}
	return root.String()
}
