package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/client"
)

// guarded marks commands that need a session, like the UI's protected routes.
const guarded = "requires-session"

type app struct {
	out         io.Writer
	apiURL      string
	sessionPath string
	store       *client.SessionStore
	session     *client.Session
	api         *client.Client
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:          "hospitalctl",
		Short:        "Command-line client for the hospital records API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	defaultURL := os.Getenv("HOSPITAL_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3001/api"
	}
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api", defaultURL, "API base URL")
	rootCmd.PersistentFlags().StringVar(&a.sessionPath, "session-file", "", "session file (default ~/.hospitalctl/session.json)")

	rootCmd.AddCommand(loginCmd(a))
	rootCmd.AddCommand(logoutCmd(a))
	rootCmd.AddCommand(patientsCmd(a))
	rootCmd.AddCommand(medicationsCmd(a))
	rootCmd.AddCommand(departmentsCmd(a))
	rootCmd.AddCommand(treatmentsCmd(a))
	rootCmd.AddCommand(queriesCmd(a))
	rootCmd.AddCommand(seedCmd(a))

	return rootCmd
}

// init loads the session and refuses guarded commands without one.
func (a *app) init(cmd *cobra.Command) error {
	path := a.sessionPath
	if path == "" {
		var err error
		if path, err = client.DefaultSessionPath(); err != nil {
			return err
		}
	}
	a.store = client.NewSessionStore(path)

	session, err := a.store.Load()
	if err != nil {
		return err
	}
	a.session = session
	a.api = client.New(a.apiURL, client.WithSession(session))

	if requiresSession(cmd) && !session.Authenticated() {
		return fmt.Errorf("%s: %w, run \"hospitalctl login\" first", cmd.CommandPath(), client.ErrNotLoggedIn)
	}
	return nil
}

func requiresSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[guarded]; ok {
			return true
		}
	}
	return false
}

func protect(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[guarded] = "true"
	return cmd
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func loginCmd(a *app) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("--user is required")
			}
			if err := a.store.Save(client.NewSession(username)); err != nil {
				return err
			}
			a.printf("logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "user", "", "user name")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.printf("logged out\n")
			return nil
		},
	}
}

func patientsCmd(a *app) *cobra.Command {
	cmd := protect(&cobra.Command{Use: "patients", Short: "Manage patients"})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, err := a.api.ListPatients(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(patients)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patient, err := a.api.GetPatient(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			return a.print(patient)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.DeletePatient(cmd.Context(), model.ID(args[0])); err != nil {
				return err
			}
			a.printf("patient %s deleted\n", args[0])
			return nil
		},
	})
	return cmd
}

func medicationsCmd(a *app) *cobra.Command {
	cmd := protect(&cobra.Command{Use: "medications", Short: "Manage medications"})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			medications, err := a.api.ListMedications(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(medications)
		},
	})

	var (
		code  string
		name  string
		price float64
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a medication; the code is generated when omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			medication, err := a.api.CreateMedication(cmd.Context(), &model.CreateMedicationRequest{
				MedicationCode: code,
				MedicationName: name,
				Price:          &price,
			})
			if err != nil {
				return err
			}
			return a.print(medication)
		},
	}
	create.Flags().StringVar(&code, "code", "", "medication code")
	create.Flags().StringVar(&name, "name", "", "medication name")
	create.Flags().Float64Var(&price, "price", 0, "price")
	cmd.AddCommand(create)

	return cmd
}

func departmentsCmd(a *app) *cobra.Command {
	cmd := protect(&cobra.Command{Use: "departments", Short: "Manage departments"})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List departments with staff counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			departments, err := a.api.ListDepartments(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(departments)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <number>",
		Short: "Show one department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid department number %q", args[0])
			}
			department, err := a.api.GetDepartment(cmd.Context(), number)
			if err != nil {
				return err
			}
			return a.print(department)
		},
	})
	return cmd
}

func treatmentsCmd(a *app) *cobra.Command {
	cmd := protect(&cobra.Command{Use: "treatments", Short: "Manage treatments"})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List treatments",
		RunE: func(cmd *cobra.Command, args []string) error {
			treatments, err := a.api.ListTreatments(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(treatments)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <date> <patient-id> <doctor-id>",
		Short: "Show one treatment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := treatmentKey(args)
			if err != nil {
				return err
			}
			treatment, err := a.api.GetTreatment(cmd.Context(), key)
			if err != nil {
				return err
			}
			return a.print(treatment)
		},
	})

	var medications []string
	create := &cobra.Command{
		Use:   "create <date> <patient-id> <doctor-id>",
		Short: "Record a treatment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := treatmentKey(args)
			if err != nil {
				return err
			}
			treatment, err := a.api.CreateTreatment(cmd.Context(), &model.CreateTreatmentRequest{
				TreatmentDate:     key.TreatmentDate,
				PatientID:         key.PatientID,
				AttendingDoctorID: key.AttendingDoctorID,
				Medications:       medications,
			})
			if err != nil {
				return err
			}
			return a.print(treatment)
		},
	}
	create.Flags().StringSliceVar(&medications, "medication", nil, "medication code (repeatable)")
	cmd.AddCommand(create)

	return cmd
}

func treatmentKey(args []string) (model.TreatmentKey, error) {
	date, err := model.ParseDate(args[0])
	if err != nil {
		return model.TreatmentKey{}, err
	}
	return model.TreatmentKey{
		TreatmentDate:     date,
		PatientID:         model.ID(args[1]),
		AttendingDoctorID: model.ID(args[2]),
	}, nil
}

func queriesCmd(a *app) *cobra.Command {
	cmd := protect(&cobra.Command{Use: "queries", Short: "Run reports"})

	reports := []struct {
		use   string
		short string
		run   func(ctx context.Context) (interface{}, error)
	}{
		{"doctor-shifts", "Patients treated per doctor shift", func(ctx context.Context) (interface{}, error) {
			return a.api.DoctorShifts(ctx)
		}},
		{"department-medications", "Prescriptions per department and medication", func(ctx context.Context) (interface{}, error) {
			return a.api.DepartmentMedications(ctx)
		}},
		{"nurses", "Nurses and their departments", func(ctx context.Context) (interface{}, error) {
			return a.api.Nurses(ctx)
		}},
		{"doctors", "Attending doctors", func(ctx context.Context) (interface{}, error) {
			return a.api.Doctors(ctx)
		}},
	}
	for _, r := range reports {
		r := r
		cmd.AddCommand(&cobra.Command{
			Use:   r.use,
			Short: r.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				result, err := r.run(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(result)
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "drug-usage <doctor-id>",
		Short: "Medication usage for one doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := a.api.DoctorDrugUsage(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			return a.print(usage)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "assign-nurse <nurse-id> <department-number>",
		Short: "Assign a nurse to a department",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid department number %q", args[1])
			}
			if err := a.api.AssignNurse(cmd.Context(), &model.AssignNurseRequest{
				NurseID:          model.ID(args[0]),
				DepartmentNumber: number,
			}); err != nil {
				return err
			}
			a.printf("nurse %s assigned to department %d\n", args[0], number)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "roles <id>",
		Short: "Roles held by a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := a.api.PersonRoles(cmd.Context(), model.ID(args[0]))
			if err != nil {
				return err
			}
			return a.print(roles)
		},
	})
	return cmd
}
