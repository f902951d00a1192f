package gacha

//pick performs one exact weighted draw: u in [0, 1) is scaled to [0, total) and
//walked down the weights by cumulative subtraction. Zero weights are never
//selected. Returns -1 when every weight is zero.
func pick(weights []float64, u float64) int {
	var total float64
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last == -1 {
		return -1
	}
	x := u * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
	}
	//float rounding at the very top of the range
	return last
}

func rateWeights(rates []Rate) []float64 {
	w := make([]float64, len(rates))
	for i, r := range rates {
		w[i] = r.Percent
	}
	return w
}

func prizeWeights(prizes []Prize) []float64 {
	w := make([]float64, len(prizes))
	for i, p := range prizes {
		w[i] = p.Weight
	}
	return w
}
