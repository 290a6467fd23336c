// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcileOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_reconcile_operations_total",
			Help: "Child writes issued while saving recipe aggregates",
		},
		[]string{"entity", "op"},
	)

	transactionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipebox_transaction_failures_total",
			Help: "Recipe update transactions that were rolled back",
		},
	)

	updateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipebox_update_duration_seconds",
			Help:    "Recipe update latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func observeWrite(entity, op string) {
	reconcileOperations.WithLabelValues(entity, op).Inc()
}
