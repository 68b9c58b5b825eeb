package apitest

import (
	"net/http"
	"time"

	"tableflip.dev/willow/pkg/planner"
)

const completionXP = 10

func (s *Server) createToken(w http.ResponseWriter, r *http.Request) {
	var in planner.Credentials
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[in.Username]
	if !ok || a.password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}
	access := s.issueLocked(in.Username, time.Now().Add(s.TokenTTL))
	writeJSON(w, http.StatusOK, map[string]string{"access": access, "refresh": "unused"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in planner.Registration
	if !decode(w, r, &in) {
		return
	}
	fields := map[string][]string{}
	required(fields, "username", in.Username)
	required(fields, "email", in.Email)
	required(fields, "password", in.Password)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.accounts[in.Username]; taken {
		fields["username"] = []string{"A user with that username already exists."}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}
	a := s.addUserLocked(in.Username, in.Email, in.Password)
	writeJSON(w, http.StatusCreated, planner.User{ID: a.user.ID, Username: a.user.Username, Email: a.user.Email})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in planner.PasswordReset
	if !decode(w, r, &in) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	var in planner.EmailChange
	if r.Method == http.MethodPatch && !decode(w, r, &in) {
		return
	}
	s.withAccount(r, func(a *account) {
		if in.Email != "" {
			a.user.Email = in.Email
		}
		u := a.user
		stats := *a.user.Profile
		u.Profile = &stats
		writeJSON(w, http.StatusOK, u)
	})
}

func (s *Server) setPassword(w http.ResponseWriter, r *http.Request) {
	var in planner.PasswordChange
	if !decode(w, r, &in) {
		return
	}
	s.withAccount(r, func(a *account) {
		if a.password != in.CurrentPassword {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"current_password": {"Invalid password."}})
			return
		}
		if in.NewPassword != in.ReNewPassword {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"The two password fields didn't match."}})
			return
		}
		a.password = in.NewPassword
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	due := r.URL.Query().Get("due_date")
	s.withAccount(r, func(a *account) {
		out := make([]planner.Task, 0, len(a.tasks))
		for _, t := range a.tasks {
			if due == "" || (!t.DueDate.IsZero() && t.DueDate.String() == due) {
				out = append(out, t)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in planner.NewTask
	if !decode(w, r, &in) {
		return
	}
	fields := map[string][]string{}
	required(fields, "title", in.Title)
	if in.Priority != "" && !in.Priority.Valid() {
		fields["priority"] = []string{`"` + string(in.Priority) + `" is not a valid choice.`}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}
	if in.Priority == "" {
		in.Priority = planner.PriorityMedium
	}
	s.withAccount(r, func(a *account) {
		t := planner.Task{
			ID:          s.id(),
			Title:       in.Title,
			Description: in.Description,
			DueDate:     in.DueDate,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Priority:    in.Priority,
			Category:    in.Category,
		}
		a.tasks = append(a.tasks, t)
		writeJSON(w, http.StatusCreated, t)
	})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var in planner.TaskPatch
	if !decode(w, r, &in) {
		return
	}
	id := pathID(r)
	s.withAccount(r, func(a *account) {
		for i := range a.tasks {
			t := &a.tasks[i]
			if t.ID != id {
				continue
			}
			if in.Title != nil {
				t.Title = *in.Title
			}
			if in.Priority != nil {
				t.Priority = *in.Priority
			}
			if in.DueDate != nil {
				t.DueDate = *in.DueDate
			}
			if in.Completed != nil {
				if *in.Completed && !t.Completed {
					a.user.Profile.XP += completionXP
				}
				t.Completed = *in.Completed
			}
			writeJSON(w, http.StatusOK, *t)
			return
		}
		notFound(w)
	})
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.withAccount(r, func(a *account) {
		for i, t := range a.tasks {
			if t.ID == id {
				a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		notFound(w)
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		out := append([]planner.Category{}, a.categories...)
		writeJSON(w, http.StatusOK, out)
	})
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var in planner.NewCategory
	if !decode(w, r, &in) {
		return
	}
	fields := map[string][]string{}
	required(fields, "name", in.Name)
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}
	s.withAccount(r, func(a *account) {
		c := planner.Category{ID: s.id(), Name: in.Name}
		a.categories = append(a.categories, c)
		writeJSON(w, http.StatusCreated, c)
	})
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		out := append([]planner.FocusItem{}, a.goals...)
		sortByID(out, func(g planner.FocusItem) int { return g.ID })
		writeJSON(w, http.StatusOK, out)
	})
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var in planner.NewFocusItem
	if !decode(w, r, &in) {
		return
	}
	fields := map[string][]string{}
	required(fields, "text", in.Text)
	if in.Date.IsZero() {
		fields["date"] = []string{"This field is required."}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}
	s.withAccount(r, func(a *account) {
		g := planner.FocusItem{ID: s.id(), Text: in.Text, Date: in.Date}
		a.goals = append(a.goals, g)
		writeJSON(w, http.StatusCreated, g)
	})
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	var in planner.FocusItemPatch
	if !decode(w, r, &in) {
		return
	}
	id := pathID(r)
	s.withAccount(r, func(a *account) {
		for i := range a.goals {
			g := &a.goals[i]
			if g.ID != id {
				continue
			}
			if in.Text != nil {
				g.Text = *in.Text
			}
			if in.Completed != nil {
				g.Completed = *in.Completed
			}
			writeJSON(w, http.StatusOK, *g)
			return
		}
		notFound(w)
	})
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.withAccount(r, func(a *account) {
		for i, g := range a.goals {
			if g.ID == id {
				a.goals = append(a.goals[:i], a.goals[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		notFound(w)
	})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		out := append([]planner.ScheduleEvent{}, a.events...)
		writeJSON(w, http.StatusOK, out)
	})
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var in planner.NewScheduleEvent
	if !decode(w, r, &in) {
		return
	}
	fields := map[string][]string{}
	required(fields, "title", in.Title)
	if in.Date.IsZero() {
		fields["date"] = []string{"This field is required."}
	}
	if in.StartTime == nil {
		fields["start_time"] = []string{"This field is required."}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}
	s.withAccount(r, func(a *account) {
		e := planner.ScheduleEvent{ID: s.id(), Title: in.Title, Date: in.Date, StartTime: *in.StartTime, EndTime: in.EndTime}
		a.events = append(a.events, e)
		writeJSON(w, http.StatusCreated, e)
	})
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.withAccount(r, func(a *account) {
		for i, e := range a.events {
			if e.ID == id {
				a.events = append(a.events[:i], a.events[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		notFound(w)
	})
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		out := append([]planner.Note{}, a.notes...)
		writeJSON(w, http.StatusOK, out)
	})
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var in planner.NoteInput
	if !decode(w, r, &in) {
		return
	}
	if in.Date.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"date": {"This field is required."}})
		return
	}
	s.withAccount(r, func(a *account) {
		for _, n := range a.notes {
			if n.Date.SameDay(in.Date) {
				writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"The fields user, date must make a unique set."}})
				return
			}
		}
		n := planner.Note{ID: s.id(), Date: in.Date, Content: in.Content}
		a.notes = append(a.notes, n)
		writeJSON(w, http.StatusCreated, n)
	})
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	var in planner.NoteInput
	if !decode(w, r, &in) {
		return
	}
	id := pathID(r)
	s.withAccount(r, func(a *account) {
		for i := range a.notes {
			if a.notes[i].ID == id {
				a.notes[i].Content = in.Content
				writeJSON(w, http.StatusOK, a.notes[i])
				return
			}
		}
		notFound(w)
	})
}
