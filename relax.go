package golpsa

// Relax returns the linear relaxation of the model: a deep copy in
// which every integer and binary variable becomes continuous, with
// bounds and all constraints preserved. The receiver is never
// mutated, and relaxing an already-continuous model returns a
// structurally equivalent copy, so the operation is idempotent.
func (model *Model) Relax() *Model {
	relaxed := model.Clone()
	for _, v := range relaxed.vars {
		v.vtype = ContinuousVariable
	}
	return relaxed
}
