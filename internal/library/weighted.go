package library

// Option is a single candidate DefinitionPath with its EXPORT_RATIO
// weight. A weight of 0 is valid: it still counts toward the option
// set; when every held option has weight 0 (total_weight is then 0)
// Sample returns the first option rather than dividing by zero.
type Option struct {
	Path   DefinitionPath
	Weight float64
}

// WeightedOptions accumulates a set of candidate DefinitionPaths for
// one virtual path under one region/season bucket, and draws from
// them in proportion to their recorded weight. It mirrors the
// option-set bookkeeping the resolver needs per bucket: add as
// EXPORT_RATIO lines are parsed, reset when EXPORT_EXCLUDE clears the
// bucket, sample when a lookup resolves into it.
type WeightedOptions struct {
	options     []Option
	totalWeight float64
}

// Add appends a candidate with the given weight, maintaining the
// running total_weight invariant.
func (w *WeightedOptions) Add(path DefinitionPath, weight float64) {
	w.options = append(w.options, Option{Path: path, Weight: weight})
	w.totalWeight += weight
}

// Reset discards every option, restoring the zero value.
func (w *WeightedOptions) Reset() {
	w.options = nil
	w.totalWeight = 0
}

// Count reports how many options are currently held.
func (w *WeightedOptions) Count() int {
	return len(w.options)
}

// TotalWeight reports the running sum of every option's weight.
func (w *WeightedOptions) TotalWeight() float64 {
	return w.totalWeight
}

// Options returns a snapshot of the current option set.
func (w *WeightedOptions) Options() []Option {
	out := make([]Option, len(w.options))
	copy(out, w.options)
	return out
}

// Sample draws one DefinitionPath: pick r uniformly in
// [0, total_weight), then walk the options subtracting each weight
// from the running remainder until it drops to zero or below,
// returning that option. Sample reports ok=false only when no options
// are held at all. A total_weight of zero (every held option has
// weight 0) falls back to the first option rather than dividing by
// zero.
func (w *WeightedOptions) Sample(r Rand) (DefinitionPath, bool) {
	if len(w.options) == 0 {
		return DefinitionPath{}, false
	}
	if w.totalWeight <= 0 {
		return w.options[0].Path, true
	}
	remainder := r.Float64() * w.totalWeight
	for _, opt := range w.options {
		remainder -= opt.Weight
		if remainder <= 0 {
			return opt.Path, true
		}
	}
	return w.options[len(w.options)-1].Path, true
}
