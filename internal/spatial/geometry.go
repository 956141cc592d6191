package spatial

import "github.com/nightpulse/nightpulse-backend-go/internal/models"

// Centroid calculates the geographic centroid of a set of positions.
// Used to pick an initial map center for the heatmap view.
func Centroid(positions []models.GeoPosition) models.GeoPosition {
	if len(positions) == 0 {
		return models.GeoPosition{}
	}

	var sumLat, sumLon float64
	for _, p := range positions {
		sumLat += p.Latitude
		sumLon += p.Longitude
	}

	return models.GeoPosition{
		Latitude:  sumLat / float64(len(positions)),
		Longitude: sumLon / float64(len(positions)),
	}
}

// WeightedCentroid calculates the centroid of a set of positions weighted by
// activity, so busier venues pull the map center toward them
func WeightedCentroid(positions []models.GeoPosition, weights []float64) models.GeoPosition {
	if len(positions) == 0 {
		return models.GeoPosition{}
	}

	var sumLat, sumLon, sumWeights float64
	for i, p := range positions {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		sumLat += p.Latitude * w
		sumLon += p.Longitude * w
		sumWeights += w
	}

	if sumWeights == 0 {
		return Centroid(positions)
	}

	return models.GeoPosition{
		Latitude:  sumLat / sumWeights,
		Longitude: sumLon / sumWeights,
	}
}
