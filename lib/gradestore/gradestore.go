// Package gradestore persists daily grade snapshots so clients can chart
// grade history over time.
package gradestore

import (
	"context"
	"database/sql"
	"time"

	_ "embed"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("gradestore")

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) (Store, error) {
	_, err := database.Exec(Schema)
	if err != nil {
		return Store{}, err
	}
	return Store{db: database}, nil
}

// CourseSnapshot is a single course's overall grade at a point in time.
type CourseSnapshot struct {
	Course string
	Time   time.Time
	Value  float64
}

// Push records one snapshot per course for the given user. Snapshots
// already taken the same calendar day are replaced, so polling more than
// once a day never inflates the history.
func (s Store) Push(ctx context.Context, user string, at time.Time, snapshots []CourseSnapshot) error {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()

	span.SetAttributes(attribute.String("user", user))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()

	startOfToday := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()).Unix()
	startOfTomorrow := time.Date(at.Year(), at.Month(), at.Day()+1, 0, 0, 0, 0, at.Location()).Unix()

	_, err = tx.ExecContext(ctx, `
delete from grade_snapshot
where time >= ? and time < ?
and user_course_id in (select id from user_course where user = ?)`,
		startOfToday, startOfTomorrow, user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, snapshot := range snapshots {
		_, err := tx.ExecContext(ctx, `
insert into user_course (user, course) values (?, ?)
on conflict (user, course) do nothing`,
			user, snapshot.Course)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		var userCourseId int64
		err = tx.QueryRowContext(ctx,
			`select id from user_course where user = ? and course = ?`,
			user, snapshot.Course).Scan(&userCourseId)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		_, err = tx.ExecContext(ctx,
			`insert into grade_snapshot (user_course_id, time, value) values (?, ?, ?)`,
			userCourseId, snapshot.Time.Unix(), snapshot.Value)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// CourseHistory is every recorded snapshot of one course, oldest first.
type CourseHistory struct {
	Course    string
	Snapshots []CourseSnapshot
}

// Pull returns the full snapshot history for a user grouped by course.
func (s Store) Pull(ctx context.Context, user string) ([]CourseHistory, error) {
	ctx, span := tracer.Start(ctx, "Pull")
	defer span.End()

	span.SetAttributes(attribute.String("user", user))

	rows, err := s.db.QueryContext(ctx, `
select uc.course, gs.time, gs.value
from grade_snapshot gs
join user_course uc on uc.id = gs.user_course_id
where uc.user = ?
order by uc.course, gs.time`,
		user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var courses []CourseHistory
	var last *CourseHistory

	for rows.Next() {
		var course string
		var unix int64
		var value float64
		if err := rows.Scan(&course, &unix, &value); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		// rows are sorted by course so every course's snapshots are
		// contiguous
		if last == nil || last.Course != course {
			if last != nil {
				courses = append(courses, *last)
			}
			last = &CourseHistory{Course: course}
		}
		last.Snapshots = append(last.Snapshots, CourseSnapshot{
			Course: course,
			Time:   time.Unix(unix, 0),
			Value:  value,
		})
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if last != nil {
		courses = append(courses, *last)
	}
	return courses, nil
}
