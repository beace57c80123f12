// Package service computes investigation reports over carved artefacts
package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"exhume/internal/adapters/artifact"
	"exhume/internal/core/carve"
	perr "exhume/internal/platform/errors"
	"exhume/internal/services/report/domain"
)

// DefaultTop is the ranking length when none is configured
const DefaultTop = 10

// Service implements domain.BuilderPort
type Service struct {
	top int
}

// New constructs the report service. top caps every ranked view;
// values below one fall back to DefaultTop
func New(top int) *Service {
	if top < 1 {
		top = DefaultTop
	}
	return &Service{top: top}
}

// convAgg accumulates one conversation's rollup in first-appearance order
type convAgg struct {
	uid        string
	block      int
	messages   int
	deleted    int
	senders    map[string]struct{}
	hasDeleted bool
}

// senderAgg accumulates one participant's rollup
type senderAgg struct {
	sender   string
	messages int
	deleted  int
	convs    map[string]struct{}
}

// Build loads a clean_messages artefact and computes all four views.
// Every ranking breaks ties deterministically, so the same table always
// yields the same report
func (s *Service) Build(ctx context.Context, path string) (domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}
	recs, err := artifact.ReadMessages(path)
	if err != nil {
		return domain.Report{}, perr.Wrap(err, perr.ErrorCodeIngest, "read messages artefact")
	}

	rep := domain.Report{Rows: len(recs)}

	var (
		convs   []*convAgg
		convIdx = map[string]*convAgg{}
		senders []*senderAgg
		sendIdx = map[string]*senderAgg{}
		hours   [24]int
	)
	for i := range recs {
		m := &recs[i]

		cv := convIdx[m.ConversationUID]
		if cv == nil {
			cv = &convAgg{uid: m.ConversationUID, block: m.BlockID, senders: map[string]struct{}{}}
			convIdx[m.ConversationUID] = cv
			convs = append(convs, cv)
		}
		cv.messages++
		cv.senders[m.Sender] = struct{}{}
		if m.Status == carve.StatusDeleted {
			cv.deleted++
		}
		if m.HasDeleted {
			cv.hasDeleted = true
		}

		sd := sendIdx[m.Sender]
		if sd == nil {
			sd = &senderAgg{sender: m.Sender, convs: map[string]struct{}{}}
			sendIdx[m.Sender] = sd
			senders = append(senders, sd)
		}
		sd.messages++
		sd.convs[m.ConversationUID] = struct{}{}
		if m.Status == carve.StatusDeleted {
			sd.deleted++
		}

		if m.Datetime.IsZero() {
			rep.Undated++
		} else {
			hours[m.Datetime.Hour()]++
		}
	}
	rep.Conversations = len(convs)

	rep.Hotspots = s.hotspots(convs)
	rep.Participants = s.participants(senders)
	rep.Largest, rep.Smallest = s.volumes(convs)
	for h, n := range hours {
		if n > 0 {
			rep.Timeline = append(rep.Timeline, domain.HourBucket{Hour: h, Messages: n})
		}
	}
	return rep, nil
}

// hotspots ranks conversations holding at least one deleted message,
// most deletions first, block order on ties
func (s *Service) hotspots(convs []*convAgg) []domain.Hotspot {
	out := make([]domain.Hotspot, 0, len(convs))
	for _, cv := range convs {
		if cv.deleted == 0 {
			continue
		}
		out = append(out, domain.Hotspot{
			ConversationUID: cv.uid,
			BlockID:         cv.block,
			Deleted:         cv.deleted,
			Total:           cv.messages,
			Rate:            float64(cv.deleted) / float64(cv.messages),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Deleted != out[j].Deleted {
			return out[i].Deleted > out[j].Deleted
		}
		return out[i].BlockID < out[j].BlockID
	})
	return trim(out, s.top)
}

// participants ranks senders by deletion volume, then message volume,
// then sender for a total order
func (s *Service) participants(senders []*senderAgg) []domain.Participant {
	out := make([]domain.Participant, 0, len(senders))
	for _, sd := range senders {
		out = append(out, domain.Participant{
			Sender:        sd.sender,
			Messages:      sd.messages,
			Deleted:       sd.deleted,
			Rate:          float64(sd.deleted) / float64(sd.messages),
			Conversations: len(sd.convs),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Deleted != b.Deleted {
			return a.Deleted > b.Deleted
		}
		if a.Messages != b.Messages {
			return a.Messages > b.Messages
		}
		return a.Sender < b.Sender
	})
	return trim(out, s.top)
}

// volumes returns the largest and smallest conversations by message count.
// Conversations enter through their message rows, so every entry is
// nonzero by construction
func (s *Service) volumes(convs []*convAgg) (largest, smallest []domain.Volume) {
	all := make([]domain.Volume, 0, len(convs))
	for _, cv := range convs {
		all = append(all, domain.Volume{
			ConversationUID: cv.uid,
			BlockID:         cv.block,
			Messages:        cv.messages,
			Participants:    len(cv.senders),
			HasDeleted:      cv.hasDeleted,
		})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Messages != all[j].Messages {
			return all[i].Messages > all[j].Messages
		}
		return all[i].BlockID < all[j].BlockID
	})
	largest = trim(append([]domain.Volume(nil), all...), s.top)

	sort.Slice(all, func(i, j int) bool {
		if all[i].Messages != all[j].Messages {
			return all[i].Messages < all[j].Messages
		}
		return all[i].BlockID < all[j].BlockID
	})
	smallest = trim(all, s.top)
	return largest, smallest
}

func trim[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Render prints the report as aligned text, sections in fixed order
func (s *Service) Render(w io.Writer, rep domain.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "messages\t%d\n", rep.Rows)
	fmt.Fprintf(tw, "conversations\t%d\n", rep.Conversations)
	fmt.Fprintf(tw, "undated messages\t%d\n", rep.Undated)

	fmt.Fprintf(tw, "\ndeletion hotspots\n")
	if len(rep.Hotspots) == 0 {
		fmt.Fprintf(tw, "none\n")
	} else {
		fmt.Fprintf(tw, "uid\tdeleted\ttotal\trate\n")
		for _, h := range rep.Hotspots {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", h.ConversationUID, h.Deleted, h.Total, pct(h.Rate))
		}
	}

	fmt.Fprintf(tw, "\nparticipant activity\n")
	if len(rep.Participants) == 0 {
		fmt.Fprintf(tw, "none\n")
	} else {
		fmt.Fprintf(tw, "sender\tmessages\tdeleted\trate\tconversations\n")
		for _, p := range rep.Participants {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", p.Sender, p.Messages, p.Deleted, pct(p.Rate), p.Conversations)
		}
	}

	fmt.Fprintf(tw, "\nlargest conversations\n")
	renderVolumes(tw, rep.Largest)
	fmt.Fprintf(tw, "\nsmallest conversations\n")
	renderVolumes(tw, rep.Smallest)

	fmt.Fprintf(tw, "\nactivity by hour\n")
	if len(rep.Timeline) == 0 {
		fmt.Fprintf(tw, "none\n")
	} else {
		fmt.Fprintf(tw, "hour\tmessages\n")
		for _, b := range rep.Timeline {
			fmt.Fprintf(tw, "%02d:00\t%d\n", b.Hour, b.Messages)
		}
	}

	return tw.Flush()
}

func renderVolumes(tw *tabwriter.Writer, vols []domain.Volume) {
	if len(vols) == 0 {
		fmt.Fprintf(tw, "none\n")
		return
	}
	fmt.Fprintf(tw, "uid\tmessages\tparticipants\thas_deleted\n")
	for _, v := range vols {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", v.ConversationUID, v.Messages, v.Participants, v.HasDeleted)
	}
}

func pct(r float64) string { return fmt.Sprintf("%.1f%%", r*100) }
