package resilience

import "github.com/mzigo/insurance-brokerage-portal/internal/model"

// Buffers groups the per-entity ephemeral write buffers so they can be
// injected as a unit and reset together from the admin API.
type Buffers struct {
	Claims        *Buffer[model.Claim]
	Quotes        *Buffer[model.Quote]
	Consultations *Buffer[model.Consultation]
	Outsourcing   *Buffer[model.OutsourcingRequest]
	Diaspora      *Buffer[model.DiasporaRequest]
	Payments      *Buffer[model.Payment]
}

// NewBuffers builds one buffer per submission entity with the given capacity.
// A non-positive capacity falls back to DefaultBufferCapacity.
func NewBuffers(capacity int) *Buffers {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &Buffers{
		Claims:        NewBuffer[model.Claim](capacity),
		Quotes:        NewBuffer[model.Quote](capacity),
		Consultations: NewBuffer[model.Consultation](capacity),
		Outsourcing:   NewBuffer[model.OutsourcingRequest](capacity),
		Diaspora:      NewBuffer[model.DiasporaRequest](capacity),
		Payments:      NewBuffer[model.Payment](capacity),
	}
}

// ResetAll clears every buffer.
func (b *Buffers) ResetAll() {
	b.Claims.Reset()
	b.Quotes.Reset()
	b.Consultations.Reset()
	b.Outsourcing.Reset()
	b.Diaspora.Reset()
	b.Payments.Reset()
}

// Len reports the total number of buffered records across all entities.
func (b *Buffers) Len() int {
	return b.Claims.Len() + b.Quotes.Len() + b.Consultations.Len() +
		b.Outsourcing.Len() + b.Diaspora.Len() + b.Payments.Len()
}
