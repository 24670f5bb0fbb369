/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package facade

import "github.com/hyperledger/fabric-lib-go/common/metrics"

var (
	sessionsOpenedCounterOpts = metrics.CounterOpts{
		Namespace:    "ledgergw",
		Subsystem:    "facade",
		Name:         "sessions_opened",
		Help:         "The number of gateway sessions opened.",
		LabelNames:   []string{"organization"},
		StatsdFormat: "%{#fqname}.%{organization}",
	}

	transactionsCounterOpts = metrics.CounterOpts{
		Namespace:    "ledgergw",
		Subsystem:    "facade",
		Name:         "transactions",
		Help:         "The number of evaluated and submitted transactions.",
		LabelNames:   []string{"kind", "function", "success"},
		StatsdFormat: "%{#fqname}.%{kind}.%{function}.%{success}",
	}

	transactionDurationHistogramOpts = metrics.HistogramOpts{
		Namespace:    "ledgergw",
		Subsystem:    "facade",
		Name:         "transaction_duration",
		Help:         "The time to evaluate or submit a transaction.",
		LabelNames:   []string{"kind", "function"},
		StatsdFormat: "%{#fqname}.%{kind}.%{function}",
	}

	validationFailuresCounterOpts = metrics.CounterOpts{
		Namespace:    "ledgergw",
		Subsystem:    "facade",
		Name:         "validation_failures",
		Help:         "The number of operations rejected before a session was opened.",
		LabelNames:   []string{"operation"},
		StatsdFormat: "%{#fqname}.%{operation}",
	}
)

type Metrics struct {
	SessionsOpened      metrics.Counter
	Transactions        metrics.Counter
	TransactionDuration metrics.Histogram
	ValidationFailures  metrics.Counter
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		SessionsOpened:      p.NewCounter(sessionsOpenedCounterOpts),
		Transactions:        p.NewCounter(transactionsCounterOpts),
		TransactionDuration: p.NewHistogram(transactionDurationHistogramOpts),
		ValidationFailures:  p.NewCounter(validationFailuresCounterOpts),
	}
}
