package interfaces

// VolumeEstimator supplies search volume and difficulty estimates for a
// keyword. The default implementation returns randomized placeholder values;
// estimates are explicitly non-authoritative and the interface exists so a
// real data source can be injected without touching the metrics engine.
type VolumeEstimator interface {
	Estimate(keyword string) (volume int, difficulty int)
}
