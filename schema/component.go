package schema

import "fmt"

// Activation is an opaque nonlinearity tag carried to code generation.
type Activation int

const (
	NoActivation Activation = iota
	ReLU
	ReLU6
	SiLU
	Sigmoid
	Softmax
)

var activationNames = [...]string{"none", "relu", "relu6", "silu", "sigmoid", "softmax"}

func (a Activation) String() string {
	if a < 0 || int(a) >= len(activationNames) {
		return "activation(?)"
	}

	return activationNames[a]
}

// ParseActivation maps a lower-case name back to its Activation.
func ParseActivation(name string) (Activation, error) {
	if name == "" {
		return NoActivation, nil
	}
	for i, n := range activationNames {
		if n == name {
			return Activation(i), nil
		}
	}

	return NoActivation, fmt.Errorf("%w: activation %q", ErrBadComponent, name)
}

// RegularizationKind selects the regularization applied after a layer.
type RegularizationKind int

const (
	NoRegularization RegularizationKind = iota
	BatchNorm
	LayerNorm
	Dropout
	ChannelDropout
)

var regularizationNames = [...]string{"none", "batchnorm", "layernorm", "dropout", "channel_dropout"}

func (k RegularizationKind) String() string {
	if k < 0 || int(k) >= len(regularizationNames) {
		return "regularization(?)"
	}

	return regularizationNames[k]
}

// ParseRegularization maps a lower-case name back to its kind.
func ParseRegularization(name string) (RegularizationKind, error) {
	if name == "" {
		return NoRegularization, nil
	}
	for i, n := range regularizationNames {
		if n == name {
			return RegularizationKind(i), nil
		}
	}

	return NoRegularization, fmt.Errorf("%w: regularization %q", ErrBadComponent, name)
}

// Regularization is an opaque tag. P is the drop probability for the
// dropout kinds and ignored otherwise.
type Regularization struct {
	Kind RegularizationKind
	P    float64
}

func (r Regularization) validate() error {
	if r.Kind < NoRegularization || r.Kind > ChannelDropout {
		return fmt.Errorf("%w: regularization kind %d", ErrBadComponent, int(r.Kind))
	}
	if (r.Kind == Dropout || r.Kind == ChannelDropout) && (r.P < 0 || r.P >= 1) {
		return fmt.Errorf("%w: drop probability %g not in [0, 1)", ErrBadComponent, r.P)
	}

	return nil
}

func (r Regularization) String() string {
	if r.Kind == Dropout || r.Kind == ChannelDropout {
		return fmt.Sprintf("%s(%g)", r.Kind, r.P)
	}

	return r.Kind.String()
}
