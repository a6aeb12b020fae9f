package wallet

import "math"

// KoboPerNaira is the minor-unit conversion factor for NGN. The ledger stores
// kobo exclusively; major-unit amounts are converted and rounded once, at the
// service boundary.
const KoboPerNaira = 100

func NairaToKobo(naira float64) int64 {
	return int64(math.Round(naira * KoboPerNaira))
}

func KoboToNaira(kobo int64) float64 {
	return float64(kobo) / KoboPerNaira
}
