package services

import "math"

// CartLine adalah satu baris cart: snapshot nama+harga saat item ditambahkan.
type CartLine struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Qty    int     `json:"qty"`
}

func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Qty)
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Service  float64 `json:"service"`
	Total    float64 `json:"total"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals menghitung Totals dari nol setiap kali dipanggil — tidak pernah
// di-patch inkremental supaya tidak drift. Subtotal adalah jumlah eksak
// harga*qty; pembulatan 2 desimal hanya di tax, service, dan total.
func ComputeTotals(lines []CartLine, taxPct, svcPct float64) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}

	tax := round2(subtotal * taxPct / 100)
	svc := round2(subtotal * svcPct / 100)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Service:  svc,
		Total:    round2(subtotal + tax + svc),
	}
}
