package reshape

import (
	"fomcdots/pkg/contracts/domain"
)

// Expand turns the long table into one row per individual participant vote:
// each record is emitted NumParticipants times and the count column is
// dropped, so multiplicity alone encodes the count. The output length always
// equals the sum of the input counts.
//
// A non-positive count is an input-contract violation and fails the whole
// call; it is never coerced or skipped.
func Expand(records []domain.LongRecord) ([]domain.ParticipantVote, error) {
	total := 0
	for i, rec := range records {
		if rec.NumParticipants < 1 {
			return nil, &CountError{Row: i, Count: rec.NumParticipants}
		}
		total += rec.NumParticipants
	}

	votes := make([]domain.ParticipantVote, 0, total)
	for _, rec := range records {
		for n := 0; n < rec.NumParticipants; n++ {
			votes = append(votes, domain.ParticipantVote{
				MeetingDate: rec.MeetingDate,
				Midpoint:    rec.Midpoint,
				Year:        rec.Year,
			})
		}
	}

	return votes, nil
}
