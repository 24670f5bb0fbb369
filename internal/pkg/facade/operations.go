/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package facade

import (
	"context"
	"strings"
)

// ValidationError reports required fields missing from a named operation.
// It is returned before any session is opened.
type ValidationError struct {
	Operation string
	Missing   []string
}

func (e *ValidationError) Error() string {
	return e.Operation + ": missing required fields: " + strings.Join(e.Missing, ", ")
}

type field struct {
	name  string
	value string
}

func required(op string, fields ...field) error {
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Operation: op, Missing: missing}
}

// invoke validates fields and submits fn with args. args holds the
// positional contract arguments, fields the subset that must be set.
func (f *Facade) invoke(ctx context.Context, u User, fn string, args []string, fields ...field) Result {
	if err := required(fn, fields...); err != nil {
		f.metrics.ValidationFailures.With("operation", fn).Add(1)
		return failure(err)
	}
	return f.Invoke(ctx, u, fn, args...)
}

type Subject struct {
	SubjectID        string
	SubjectCode      string
	SubjectName      string
	ShortDescription string
	Description      string
}

func (s Subject) args() []string {
	return []string{s.SubjectID, s.SubjectCode, s.SubjectName, s.ShortDescription, s.Description}
}

func (s Subject) fields() []field {
	return []field{
		{"subjectId", s.SubjectID},
		{"subjectCode", s.SubjectCode},
		{"subjectName", s.SubjectName},
		{"shortDescription", s.ShortDescription},
		{"description", s.Description},
	}
}

func (f *Facade) CreateSubject(ctx context.Context, u User, s Subject) Result {
	return f.invoke(ctx, u, "CreateSubject", s.args(), s.fields()...)
}

func (f *Facade) UpdateSubjectInfo(ctx context.Context, u User, s Subject) Result {
	return f.invoke(ctx, u, "UpdateSubjectInfo", s.args(), s.fields()...)
}

func (f *Facade) DeleteSubject(ctx context.Context, u User, subjectID string) Result {
	return f.invoke(ctx, u, "DeleteSubject", []string{subjectID}, field{"subjectId", subjectID})
}

type Course struct {
	CourseID         string
	CourseCode       string
	CourseName       string
	ShortDescription string
	Description      string
}

func (c Course) args() []string {
	return []string{c.CourseID, c.CourseCode, c.CourseName, c.ShortDescription, c.Description}
}

func (c Course) fields() []field {
	return []field{
		{"courseId", c.CourseID},
		{"courseCode", c.CourseCode},
		{"courseName", c.CourseName},
		{"shortDescription", c.ShortDescription},
		{"description", c.Description},
	}
}

func (f *Facade) CreateCourse(ctx context.Context, u User, c Course) Result {
	return f.invoke(ctx, u, "CreateCourse", c.args(), c.fields()...)
}

func (f *Facade) UpdateCourseInfo(ctx context.Context, u User, c Course) Result {
	return f.invoke(ctx, u, "UpdateCourseInfo", c.args(), c.fields()...)
}

func (f *Facade) DeleteCourse(ctx context.Context, u User, courseID string) Result {
	return f.invoke(ctx, u, "DeleteCourse", []string{courseID}, field{"courseId", courseID})
}

func (f *Facade) AddSubjectToCourse(ctx context.Context, u User, courseID, subjectID string) Result {
	return f.invoke(ctx, u, "AddSubjectToCourse", []string{courseID, subjectID},
		field{"courseId", courseID}, field{"subjectId", subjectID})
}

func (f *Facade) RemoveSubjectFromCourse(ctx context.Context, u User, courseID, subjectID string) Result {
	return f.invoke(ctx, u, "RemoveSubjectFromCourse", []string{courseID, subjectID},
		field{"courseId", courseID}, field{"subjectId", subjectID})
}

// Class is a scheduled class of a subject. SubjectID is only used on
// creation.
type Class struct {
	ClassID   string
	ClassCode string
	Room      string
	Time      string
	StartDate string
	EndDate   string
	Repeat    string
	SubjectID string
	Capacity  string
}

func (c Class) fields() []field {
	return []field{
		{"classId", c.ClassID},
		{"classCode", c.ClassCode},
		{"room", c.Room},
		{"time", c.Time},
		{"startDate", c.StartDate},
		{"endDate", c.EndDate},
		{"repeat", c.Repeat},
	}
}

func (f *Facade) CreateClass(ctx context.Context, u User, c Class) Result {
	args := []string{c.ClassID, c.ClassCode, c.Room, c.Time, c.StartDate, c.EndDate, c.Repeat, c.SubjectID, c.Capacity}
	fields := append(c.fields(), field{"subjectId", c.SubjectID}, field{"capacity", c.Capacity})
	return f.invoke(ctx, u, "CreateClass", args, fields...)
}

func (f *Facade) UpdateClassInfo(ctx context.Context, u User, c Class) Result {
	args := []string{c.ClassID, c.ClassCode, c.Room, c.Time, c.StartDate, c.EndDate, c.Repeat, c.Capacity}
	fields := append(c.fields(), field{"capacity", c.Capacity})
	return f.invoke(ctx, u, "UpdateClassInfo", args, fields...)
}

func (f *Facade) CloseRegisterClass(ctx context.Context, u User, classID string) Result {
	return f.invoke(ctx, u, "CloseRegisterClass", []string{classID}, field{"classId", classID})
}

func (f *Facade) RemoveClassFromSubject(ctx context.Context, u User, subjectID, classID string) Result {
	return f.invoke(ctx, u, "RemoveClassFromSubject", []string{subjectID, classID},
		field{"subjectId", subjectID}, field{"classId", classID})
}

func (f *Facade) AddClassToTeacher(ctx context.Context, u User, classID, teacher string) Result {
	return f.invoke(ctx, u, "AddClassToTeacher", []string{classID, teacher},
		field{"classId", classID}, field{"username", teacher})
}

type Score struct {
	Teacher         string
	ClassID         string
	StudentUsername string
	ScoreValue      string
}

func (f *Facade) CreateScore(ctx context.Context, u User, s Score) Result {
	return f.invoke(ctx, u, "CreateScore",
		[]string{s.Teacher, s.ClassID, s.StudentUsername, s.ScoreValue},
		field{"teacher", s.Teacher},
		field{"classId", s.ClassID},
		field{"studentUsername", s.StudentUsername},
		field{"scoreValue", s.ScoreValue},
	)
}

type Certificate struct {
	CertificateID   string
	CourseID        string
	StudentUsername string
	IssueDate       string
}

func (f *Facade) CreateCertificate(ctx context.Context, u User, c Certificate) Result {
	return f.invoke(ctx, u, "CreateCertificate",
		[]string{c.CertificateID, c.CourseID, c.StudentUsername, c.IssueDate},
		field{"certificateId", c.CertificateID},
		field{"courseId", c.CourseID},
		field{"studentUsername", c.StudentUsername},
		field{"issueDate", c.IssueDate},
	)
}

// VerifyCertificate evaluates whether a certificate was issued to username
// for subjectID.
func (f *Facade) VerifyCertificate(ctx context.Context, u User, certificateID, subjectID, username string) Result {
	const fn = "VerifyCertificate"
	err := required(fn,
		field{"certificateId", certificateID},
		field{"subjectId", subjectID},
		field{"username", username},
	)
	if err != nil {
		f.metrics.ValidationFailures.With("operation", fn).Add(1)
		return failure(err)
	}
	return f.Query(ctx, u, fn, certificateID, subjectID, username)
}

// UserInfo holds profile fields of a ledger user. Only Username is
// required; empty fields are passed through as empty arguments.
type UserInfo struct {
	Username    string
	FullName    string
	PhoneNumber string
	Email       string
	Address     string
	Sex         string
	Birthday    string
	Country     string
}

func (f *Facade) UpdateUserInfo(ctx context.Context, u User, info UserInfo) Result {
	return f.invoke(ctx, u, "UpdateUserInfo",
		[]string{info.Username, info.FullName, info.PhoneNumber, info.Email, info.Address, info.Sex, info.Birthday, info.Country},
		field{"username", info.Username},
	)
}

func (f *Facade) UpdateUserAvatar(ctx context.Context, u User, avatar string) Result {
	return f.invoke(ctx, u, "UpdateUserAvatar", []string{avatar}, field{"avatar", avatar})
}

func (f *Facade) StudentRegisterCourse(ctx context.Context, u User, student, courseID string) Result {
	return f.invoke(ctx, u, "StudentRegisterCourse", []string{student, courseID},
		field{"student", student}, field{"courseId", courseID})
}

func (f *Facade) StudentRegisterClass(ctx context.Context, u User, student, classID string) Result {
	return f.invoke(ctx, u, "StudentRegisterClass", []string{student, classID},
		field{"student", student}, field{"classId", classID})
}

func (f *Facade) StudentCancelRegisterClass(ctx context.Context, u User, student, classID string) Result {
	return f.invoke(ctx, u, "StudentCancelRegisterClass", []string{student, classID},
		field{"student", student}, field{"classId", classID})
}
