// Package generate builds synthetic benchmark graphs.
//
// Generation itself is delegated to gonum's graph generators; this package
// validates options, seeds the random source explicitly and converts the
// result into a dense [graph.Graph]. The same [Options] always produce the
// same graph.
package generate

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/graph/graphs/gen"
	"gonum.org/v1/gonum/graph/simple"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
	"github.com/matzehuels/graphbin/pkg/graph"
)

// Model selects a random graph model.
type Model int

const (
	// ModelBarabasiAlbert grows a scale-free graph by preferential attachment.
	ModelBarabasiAlbert Model = iota + 1
	// ModelErdosRenyi places each possible edge independently with a fixed
	// probability (the G(n, p) model).
	ModelErdosRenyi
)

// Defaults used when an Options field is left at its zero value.
const (
	DefaultNodes  = 10000
	DefaultAttach = 10
	DefaultSeed   = 42
)

// ParseModel maps "ba"/"barabasi-albert" and "er"/"erdos-renyi" to a Model.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ba", "barabasi-albert", "barabasialbert":
		return ModelBarabasiAlbert, nil
	case "er", "erdos-renyi", "erdosrenyi", "gnp":
		return ModelErdosRenyi, nil
	}
	return 0, pkgerrors.New(pkgerrors.ErrCodeInvalidModel, "unknown model %q (expected ba or er)", s)
}

// String returns the short name of m.
func (m Model) String() string {
	switch m {
	case ModelBarabasiAlbert:
		return "ba"
	case ModelErdosRenyi:
		return "er"
	}
	return "unknown"
}

// Options configures a generator run.
type Options struct {
	Model Model

	// Nodes is the number of nodes to generate.
	Nodes int

	// Attach is the number of edges each new node brings in the
	// Barabási–Albert model. Ignored for Erdős–Rényi.
	Attach int

	// Probability is the edge probability of the Erdős–Rényi model.
	// Zero means ln(Nodes)/Nodes, the connectivity threshold, so an edgeless
	// graph cannot be requested. Front ends reject an explicit zero rather
	// than substitute the default.
	Probability float64

	// Seed feeds the generator's random source. Zero means [DefaultSeed].
	Seed uint64
}

// ValidateAndSetDefaults fills zero-valued fields and rejects impossible
// combinations.
func (o *Options) ValidateAndSetDefaults() error {
	switch o.Model {
	case ModelBarabasiAlbert, ModelErdosRenyi:
	default:
		return pkgerrors.New(pkgerrors.ErrCodeInvalidModel, "model not set")
	}
	if o.Nodes == 0 {
		o.Nodes = DefaultNodes
	}
	if o.Nodes < 1 || o.Nodes > math.MaxInt32 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "node count %d out of range", o.Nodes)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	switch o.Model {
	case ModelBarabasiAlbert:
		if o.Attach == 0 {
			o.Attach = DefaultAttach
		}
		if o.Attach < 1 {
			return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "attach must be positive, got %d", o.Attach)
		}
		if o.Nodes <= o.Attach {
			return pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
				"barabasi-albert needs more nodes than attach (nodes=%d attach=%d)", o.Nodes, o.Attach)
		}
	case ModelErdosRenyi:
		if o.Probability == 0 && o.Nodes > 1 {
			o.Probability = math.Log(float64(o.Nodes)) / float64(o.Nodes)
		}
		if o.Probability < 0 || o.Probability > 1 || math.IsNaN(o.Probability) {
			return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "probability %v outside [0, 1]", o.Probability)
		}
	}
	return nil
}

// Name returns the dataset name graphbin uses for generated graphs,
// e.g. "BA_10000".
func Name(opts Options) string {
	return fmt.Sprintf("%s_%d", strings.ToUpper(opts.Model.String()), opts.Nodes)
}

// Generate builds a graph according to opts. Zero-valued options are
// defaulted first; opts itself is not modified.
func Generate(ctx context.Context, opts Options) (*graph.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := rand.NewPCG(opts.Seed, opts.Seed)
	dst := simple.NewUndirectedGraph()
	var err error
	switch opts.Model {
	case ModelBarabasiAlbert:
		err = gen.PreferentialAttachment(dst, opts.Nodes, opts.Attach, src)
	case ModelErdosRenyi:
		err = gen.Gnp(dst, opts.Nodes, opts.Probability, src)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "generate %s graph", opts.Model)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := graph.FromUndirected(dst)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "convert %s graph", opts.Model)
	}
	return g, nil
}
