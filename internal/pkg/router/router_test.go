/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package router_test

import (
	"errors"

	"github.com/certledger/ledgergw/internal/pkg/router"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Router", func() {
	Describe("ResolveOrganization", func() {
		DescribeTable("known roles",
			func(role router.Role, expected string) {
				org, err := router.ResolveOrganization(role)
				Expect(err).NotTo(HaveOccurred())
				Expect(org).To(Equal(expected))
			},
			Entry("academy admin", router.AdminAcademy, "academy"),
			Entry("teacher", router.Teacher, "academy"),
			Entry("student admin", router.AdminStudent, "student"),
			Entry("student", router.Student, "student"),
		)

		DescribeTable("unknown roles never default",
			func(role router.Role) {
				org, err := router.ResolveOrganization(role)
				Expect(org).To(BeEmpty())
				var routingErr *router.RoutingError
				Expect(errors.As(err, &routingErr)).To(BeTrue())
				Expect(routingErr.Role).To(Equal(role))
			},
			Entry("zero", router.Role(0)),
			Entry("five", router.Role(5)),
			Entry("negative", router.Role(-1)),
		)
	})

	Describe("ParseRole", func() {
		It("accepts numbers and names", func() {
			r, err := router.ParseRole("2")
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(Equal(router.Teacher))

			r, err = router.ParseRole("Admin-Student")
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(Equal(router.AdminStudent))
			Expect(r.String()).To(Equal("admin-student"))
		})

		It("rejects unknown input", func() {
			_, err := router.ParseRole("9")
			Expect(err).To(MatchError("unknown role 9"))
			_, err = router.ParseRole("janitor")
			Expect(err).To(MatchError(`unknown role "janitor"`))
			Expect(router.Role(7).String()).To(Equal("Role(7)"))
		})
	})

	Describe("Router", func() {
		var (
			academy router.Organization
			student router.Organization
		)

		BeforeEach(func() {
			academy = router.Organization{Name: "academy", MSPID: "AcademyMSP"}
			student = router.Organization{Name: "student", MSPID: "StudentMSP"}
		})

		It("resolves roles to configured organizations", func() {
			r, err := router.New(student, academy)
			Expect(err).NotTo(HaveOccurred())

			org, err := r.Resolve(router.Teacher)
			Expect(err).NotTo(HaveOccurred())
			Expect(org.MSPID).To(Equal("AcademyMSP"))

			org, err = r.Resolve(router.Student)
			Expect(err).NotTo(HaveOccurred())
			Expect(org.MSPID).To(Equal("StudentMSP"))

			_, err = r.Resolve(router.Role(42))
			Expect(err).To(MatchError("unknown role 42"))

			_, err = r.Organization("bank")
			Expect(err).To(MatchError(`unknown organization "bank"`))

			Expect(r.Organizations()).To(Equal([]router.Organization{academy, student}))
		})

		It("requires every routed organization", func() {
			_, err := router.New(academy)
			Expect(err).To(MatchError("organization student is not configured"))
		})

		It("rejects invalid organizations", func() {
			_, err := router.New(academy, academy)
			Expect(err).To(MatchError("organization academy defined twice"))

			_, err = router.New(router.Organization{Name: "academy"})
			Expect(err).To(MatchError("organization academy has no msp id"))

			_, err = router.New(router.Organization{MSPID: "X"})
			Expect(err).To(MatchError("organization name is required"))
		})
	})
})
