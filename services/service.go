package services

import "blog-api/metrics"

// observe records the outcome of a service operation and passes err through.
func observe(operation string, err error) error {
	metrics.ObserveOperation(operation, err)
	return err
}
