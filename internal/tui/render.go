package tui

import (
	"fmt"
	"strings"

	"github.com/kmcrae/tripdeck/internal/planner"
	"github.com/kmcrae/tripdeck/internal/trip"
)

func (a App) View() string {
	var body string
	if a.screen == screenTrip {
		body = a.renderTrip()
	} else {
		body = a.renderEntry()
	}
	body += "\n" + a.renderStatus() + "\n" + a.renderFooter()

	if overlay := a.renderOverlay(); overlay != "" {
		return centerOverlay(body, overlay, a.width, a.height)
	}
	return body
}

func (a App) renderStatus() string {
	switch a.decision {
	case decisionCreateTrip:
		n := len(a.wf.Invitees())
		prompt := "create this trip without guests? (y/n)"
		if n == 1 {
			prompt = "create this trip and invite 1 guest? (y/n)"
		} else if n > 1 {
			prompt = fmt.Sprintf("create this trip and invite %d guests? (y/n)", n)
		}
		return promptStyle.Render(prompt)
	case decisionRemoveTrip:
		return promptStyle.Render("remove this trip? (y/n)")
	}
	if a.status == "" {
		return ""
	}
	if a.statErr {
		return errorStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}

func (a App) renderFooter() string {
	k := a.keys
	var parts []string
	add := func(keys ...string) {
		parts = append(parts, keys...)
	}
	switch {
	case a.wf.Overlay() == planner.OverlayCalendar:
		add("↑/↓/←/→ move", "pgup/pgdn month", "enter pick day", "esc done")
	case a.wf.Overlay() == planner.OverlayGuestList:
		add("enter add (empty to finish)", k.Remove.Help().Key+" remove", "esc back")
	case a.wf.Overlay() == planner.OverlayEditTrip:
		add(k.Calendar.Help().Key+" dates", "enter save", "esc cancel")
	case a.wf.Overlay() == planner.OverlayConfirmAttendance:
		add("tab switch field", "enter confirm")
	case a.tripModal == tripModalNewActivity:
		add("tab switch field", k.Calendar.Help().Key+" day", "enter save", "esc cancel")
	case a.tripModal == tripModalActivityDate:
		add("↑/↓ choose day", "enter done")
	case a.tripModal == tripModalNewLink:
		add("tab switch field", "enter save", "esc cancel")
	case a.screen == screenTrip:
		add(k.Pane.Help().Key+" pane", k.New.Help().Key+" new", k.Edit.Help().Key+" edit trip",
			k.Refresh.Help().Key+" refresh", k.Remove.Help().Key+" remove trip")
	case a.wf.Step() == planner.StepInvite:
		add(k.Guests.Help().Key+" guests", "enter create", k.Back.Help().Key+" details")
	default:
		add(k.Calendar.Help().Key+" dates", "enter continue")
	}
	add(k.Quit.Help().Key + " quit")
	return footerStyle.Render(strings.Join(parts, "  ·  "))
}

func (a App) renderEntry() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(appName))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Invite your friends and plan your next trip!"))
	b.WriteString("\n\n")

	if a.resumeOp.Busy() {
		b.WriteString(statusStyle.Render("looking for your trip..."))
		return b.String()
	}

	dates := "no dates picked"
	if a.wf.Dates.Complete() {
		dates = a.wf.Dates.Display
	} else if a.wf.Dates.StartsAt != nil {
		dates = "from " + a.wf.Dates.StartsAt.Format("Jan 2") + " (pick an end day)"
	}

	if a.wf.Step() == planner.StepDetails {
		b.WriteString(a.destInput.View())
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("When? "))
		b.WriteString(valueStyle.Render(dates))
	} else {
		b.WriteString(labelStyle.Render("Where? "))
		b.WriteString(valueStyle.Render(a.wf.Destination))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("When?  "))
		b.WriteString(valueStyle.Render(dates))
		b.WriteString("\n\n")
		invitees := a.wf.Invitees()
		if len(invitees) == 0 {
			b.WriteString(statusStyle.Render("no guests invited yet"))
		} else {
			b.WriteString(sectionStyle.Render(fmt.Sprintf("Guests (%d)", len(invitees))))
			for _, email := range invitees {
				b.WriteString("\n  " + valueStyle.Render(email))
			}
		}
	}
	return boxStyle.Render(b.String())
}

func (a App) renderTrip() string {
	var b strings.Builder
	if a.tripLoaded {
		b.WriteString(titleStyle.Render(a.trip.Header()))
	} else {
		b.WriteString(titleStyle.Render("loading trip..."))
	}
	b.WriteString("\n\n")

	if a.pane == paneActivities {
		b.WriteString(a.renderActivities())
	} else {
		b.WriteString(a.renderDetails())
	}
	return b.String()
}

func (a App) renderActivities() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Activities"))
	b.WriteString("\n")
	if len(a.sections) == 0 {
		b.WriteString(statusStyle.Render("nothing planned yet, press " + a.keys.New.Help().Key + " to add an activity"))
		return b.String()
	}
	idx := 0
	for _, section := range a.sections {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("Day %d", section.DayNumber)))
		b.WriteString(" ")
		b.WriteString(dayNameStyle.Render(section.DayName))
		b.WriteString("\n")
		if len(section.Activities) == 0 {
			b.WriteString(statusStyle.Render("  no activities this day"))
			b.WriteString("\n")
			continue
		}
		for _, act := range section.Activities {
			marker := "  "
			if idx == a.actCursor {
				marker = cursorStyle.Render("> ")
			}
			line := act.Title + "  " + act.Hour
			if act.IsPast {
				line = pastStyle.Render(line)
			} else {
				line = upcomingStyle.Render(line)
			}
			b.WriteString(marker + line + "\n")
			idx++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderDetails() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Important links"))
	b.WriteString("\n")
	if len(a.links) == 0 {
		b.WriteString(statusStyle.Render("no links saved, press " + a.keys.New.Help().Key + " to add one"))
		b.WriteString("\n")
	} else {
		for _, l := range a.links {
			b.WriteString(valueStyle.Render(l.Title))
			b.WriteString("\n  ")
			b.WriteString(subtitleStyle.Render(l.URL))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Guests"))
	b.WriteString("\n")
	if len(a.participants) == 0 {
		b.WriteString(statusStyle.Render("no guests on this trip"))
		return b.String()
	}
	for _, p := range a.participants {
		name := p.Name
		if name == "" {
			name = "pending guest"
		}
		mark := unconfirmedStyle.Render("○")
		if p.IsConfirmed {
			mark = confirmedStyle.Render("●")
		}
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n", mark, valueStyle.Render(name), subtitleStyle.Render(p.Email)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderOverlay returns the active overlay or trip modal, empty when none.
func (a App) renderOverlay() string {
	switch a.wf.Overlay() {
	case planner.OverlayCalendar:
		return modalStyle.Render(a.cal.view())
	case planner.OverlayGuestList:
		return modalStyle.Render(a.renderGuestList())
	case planner.OverlayEditTrip:
		return modalStyle.Render(a.renderEditTrip())
	case planner.OverlayConfirmAttendance:
		return modalStyle.Render(a.renderConfirm())
	}
	switch a.tripModal {
	case tripModalNewActivity:
		return modalStyle.Render(a.renderNewActivity())
	case tripModalActivityDate:
		return modalStyle.Render(a.renderActivityDate())
	case tripModalNewLink:
		return modalStyle.Render(a.renderNewLink())
	}
	return ""
}

func (a App) renderGuestList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Invite guests"))
	b.WriteString("\n\n")
	invitees := a.wf.Invitees()
	for i, email := range invitees {
		marker := "  "
		if i == a.guestCursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker + valueStyle.Render(email) + "\n")
	}
	if len(invitees) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(a.guestInput.View())
	return b.String()
}

func (a App) renderEditTrip() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit trip"))
	b.WriteString("\n\n")
	b.WriteString(a.editDest.View())
	b.WriteString("\n\n")
	dates := "no dates picked"
	if a.editDates.Complete() {
		dates = a.editDates.Display
	}
	b.WriteString(labelStyle.Render("When? "))
	b.WriteString(valueStyle.Render(dates))
	return b.String()
}

func (a App) renderConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Confirm your attendance"))
	b.WriteString("\n")
	if a.tripLoaded {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("You were invited to a trip to %s on %s.",
			a.trip.Destination, trip.RangeLabel(a.trip.StartsAt, a.trip.EndsAt))))
		b.WriteString("\n")
	}
	b.WriteString(subtitleStyle.Render("To be part of it, fill in your details below."))
	b.WriteString("\n\n")
	b.WriteString(a.nameInput.View())
	b.WriteString("\n")
	b.WriteString(a.emailInput.View())
	return b.String()
}

func (a App) renderNewActivity() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New activity"))
	b.WriteString("\n\n")
	b.WriteString(a.actTitle.View())
	b.WriteString("\n")
	b.WriteString(a.actHour.View())
	b.WriteString("\n\n")
	day := "press " + a.keys.Calendar.Help().Key + " to pick a day"
	if a.actDate != "" {
		day = a.actDate
	}
	b.WriteString(labelStyle.Render("Day: "))
	b.WriteString(valueStyle.Render(day))
	return b.String()
}

func (a App) renderActivityDate() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Which day?"))
	b.WriteString("\n\n")
	for _, d := range a.tripDays() {
		marker := "  "
		if d.Format(trip.DayFormat) == a.actDate {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker + valueStyle.Render(d.Format("Mon, Jan 2")) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderNewLink() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Save link"))
	b.WriteString("\n\n")
	b.WriteString(a.linkTitle.View())
	b.WriteString("\n")
	b.WriteString(a.linkURL.View())
	return b.String()
}
