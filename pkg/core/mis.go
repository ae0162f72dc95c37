package core

// PowerHeuristic returns the MIS weight of strategy f against g (beta = 2)
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f == 0 {
		return 0
	}
	if g == 0 {
		return 1
	}
	return (f * f) / (f*f + g*g)
}
