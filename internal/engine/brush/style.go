package brush

// InactiveLane marks an unused slot in the per-draw light-style vector.
// The fragment shader tests against the same sentinel.
const InactiveLane float32 = -1

// styleLanes builds the 4-lane style vector for one face: each lane is the
// current intensity of the face's style channel, or InactiveLane when the
// channel id falls outside the supplied values (including the empty-slot
// sentinel 255).
func styleLanes(styles [4]uint8, values []float32) [4]float32 {
	lanes := [4]float32{InactiveLane, InactiveLane, InactiveLane, InactiveLane}
	for i, s := range styles {
		if int(s) < len(values) {
			lanes[i] = values[s]
		}
	}
	return lanes
}

// lightFactor combines the style lanes the same way the fragment shader
// does: the average of all active lanes, or a neutral 1.0 when no lane is
// active (faces with no dynamic style dependency render fully lit).
func lightFactor(lanes [4]float32) float32 {
	var sum float32
	active := 0
	for _, v := range lanes {
		if v != InactiveLane {
			sum += v
			active++
		}
	}
	if active == 0 {
		return 1
	}
	return sum / float32(active)
}
