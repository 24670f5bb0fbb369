/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package facade

import (
	"testing"

	"github.com/hyperledger/fabric-lib-go/common/metrics/metricsfakes"
	. "github.com/onsi/gomega"
)

func TestNewMetrics(t *testing.T) {
	gt := NewGomegaWithT(t)

	provider := &metricsfakes.Provider{}
	provider.NewHistogramReturns(&metricsfakes.Histogram{})
	provider.NewCounterReturns(&metricsfakes.Counter{})

	facadeMetrics := NewMetrics(provider)
	gt.Expect(facadeMetrics).To(Equal(&Metrics{
		SessionsOpened:      &metricsfakes.Counter{},
		Transactions:        &metricsfakes.Counter{},
		TransactionDuration: &metricsfakes.Histogram{},
		ValidationFailures:  &metricsfakes.Counter{},
	}))

	gt.Expect(provider.NewHistogramCallCount()).To(Equal(1))
	gt.Expect(provider.Invocations()["NewHistogram"]).To(ConsistOf([][]interface{}{
		{transactionDurationHistogramOpts},
	}))

	gt.Expect(provider.NewCounterCallCount()).To(Equal(3))
	gt.Expect(provider.Invocations()["NewCounter"]).To(ConsistOf([][]interface{}{
		{sessionsOpenedCounterOpts},
		{transactionsCounterOpts},
		{validationFailuresCounterOpts},
	}))
}
