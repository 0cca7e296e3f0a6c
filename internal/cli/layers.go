package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kshitijdave/QuantumGateSim/internal/compiler"
	"github.com/kshitijdave/QuantumGateSim/internal/ir"
)

// LayersOptions holds flags for the layers command.
type LayersOptions struct {
	*RootOptions
	Strict bool
}

// LayersResult is the output of the layers command. Slots are listed in
// product order, most significant qubit first.
type LayersResult struct {
	CircuitID string     `json:"circuit_id"`
	Qubits    int        `json:"qubits"`
	Gates     int        `json:"gates"`
	Depth     int        `json:"depth"`
	Layers    []ir.Layer `json:"layers"`
}

// layerStyles colours the text rendering. Renderers built on a non-terminal
// writer drop the escape codes, so piped output stays plain.
type layerStyles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	gate     lipgloss.Style
	control  lipgloss.Style
	identity lipgloss.Style
}

func newLayerStyles(w io.Writer) layerStyles {
	r := lipgloss.NewRenderer(w)
	return layerStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9e64")),
		label:    r.NewStyle().Foreground(lipgloss.Color("#7aa2f7")),
		gate:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ece6a")),
		control:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#bb9af7")),
		identity: r.NewStyle().Faint(true),
	}
}

// NewLayersCommand creates the layers command.
func NewLayersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LayersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "layers <circuit-file>",
		Short: "Show how a circuit is grouped into layers",
		Long: `Print the layer plan the engine evaluates: each layer lists one slot per
qubit (or per two-qubit span), qubit 0 first. Idle qubits carry the identity
slot "id".

A two-qubit gate whose span touches a busy qubit starts a new layer. With
--strict, a span that encloses a busy qubit between free endpoints is
reported as E205 instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayers(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject two-qubit spans that enclose a busy qubit (E205)")

	return cmd
}

func runLayers(opts *LayersOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	c, err := loadOrFail(f, path)
	if err != nil {
		return err
	}

	var layerOpts []compiler.Option
	if opts.Strict {
		layerOpts = append(layerOpts, compiler.WithStrictSpans())
	}
	layers, err := compiler.Layers(c, layerOpts...)
	if err != nil {
		return circuitFailure(f, err)
	}

	id, err := circuitIDOrFail(f, c)
	if err != nil {
		return err
	}

	result := LayersResult{
		CircuitID: id,
		Qubits:    c.Qubits,
		Gates:     len(c.Gates),
		Depth:     len(layers),
		Layers:    layers,
	}
	if result.Layers == nil {
		result.Layers = []ir.Layer{}
	}

	return f.Success(result, func(w io.Writer) error {
		return writeLayers(w, newLayerStyles(w), c, result)
	})
}

func writeLayers(w io.Writer, st layerStyles, c *ir.Circuit, r LayersResult) error {
	fmt.Fprintln(w, st.title.Render(fmt.Sprintf("circuit %s  qubits=%d gates=%d depth=%d",
		shortID(r.CircuitID), r.Qubits, r.Gates, r.Depth)))
	if r.Depth == 0 {
		fmt.Fprintln(w, st.identity.Render("(no layers: the circuit is the identity)"))
		return nil
	}

	for i, l := range r.Layers {
		parts := make([]string, 0, len(l.Slots))
		for _, s := range l.Reversed() {
			parts = append(parts, renderSlot(st, c, s))
		}
		fmt.Fprintf(w, "%s %s\n", st.label.Render(fmt.Sprintf("layer %d:", i+1)), strings.Join(parts, " "))
	}
	return nil
}

func renderSlot(st layerStyles, c *ir.Circuit, s ir.Slot) string {
	switch {
	case s.IsIdentity():
		return st.identity.Render(s.String())
	case s.Width() > 1:
		text := s.String()
		if g := c.Gates[s.Op]; len(g.Qubits) == 2 {
			text = fmt.Sprintf("%s(c=q%d,t=q%d)", text, g.Qubits[0], g.Qubits[1])
		}
		return st.control.Render(text)
	default:
		return st.gate.Render(s.String())
	}
}
