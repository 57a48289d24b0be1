package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/monocle-dev/opsdesk/internal/auth"
	"github.com/monocle-dev/opsdesk/internal/config"
	"github.com/monocle-dev/opsdesk/internal/models"
	"github.com/monocle-dev/opsdesk/internal/repository"
	"github.com/monocle-dev/opsdesk/internal/services"
	"github.com/monocle-dev/opsdesk/internal/testenv"
	"github.com/monocle-dev/opsdesk/internal/types"
)

func ptr[T any](v T) *T { return &v }

func expectStatus(t *testing.T, resp types.ServiceResponse, status int) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("status: want %d, got %d (%s)", status, resp.StatusCode, resp.Message)
	}
	if resp.Success != (status < 300) {
		t.Fatalf("success flag %v for status %d", resp.Success, status)
	}
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	gdb, _ := testenv.NewDB(t)
	projects := services.NewProjects(gdb, zerolog.Nop())

	resp := projects.Create(ctx, types.CreateProjectRequest{ProjectName: "  Apollo "})
	expectStatus(t, resp, http.StatusOK)
	if resp.Message != "Create project success" {
		t.Errorf("message: %q", resp.Message)
	}
	created := resp.ResponseObject.(*models.Project)
	if created.ProjectName != "Apollo" {
		t.Errorf("project_name not trimmed: %q", created.ProjectName)
	}

	resp = projects.FindAll(ctx)
	expectStatus(t, resp, http.StatusOK)
	if resp.Message != "Get all projects success" {
		t.Errorf("message: %q", resp.Message)
	}
	all := resp.ResponseObject.([]models.Project)
	if len(all) != 1 || all[0].ProjectID != created.ProjectID {
		t.Fatalf("unexpected list: %+v", all)
	}

	resp = projects.Update(ctx, created.ProjectID, types.UpdateProjectRequest{
		ProjectID: created.ProjectID, ProjectName: ptr("Apollo 2"),
	})
	expectStatus(t, resp, http.StatusOK)
	if got := resp.ResponseObject.(*models.Project).ProjectName; got != "Apollo 2" {
		t.Errorf("updated name: %q", got)
	}

	expectStatus(t, projects.Delete(ctx, created.ProjectID), http.StatusOK)
	expectStatus(t, projects.Delete(ctx, created.ProjectID), http.StatusNotFound)
	expectStatus(t, projects.FindByID(ctx, created.ProjectID), http.StatusNotFound)

	all = projects.FindAll(ctx).ResponseObject.([]models.Project)
	if len(all) != 0 {
		t.Errorf("project survived delete: %+v", all)
	}
}

func TestCreateRejectsBlankValues(t *testing.T) {
	ctx := context.Background()
	gdb, _ := testenv.NewDB(t)
	categories := services.NewCategories(gdb, zerolog.Nop())

	resp := categories.Create(ctx, types.CreateCategoryRequest{CategoryName: "   "})
	expectStatus(t, resp, http.StatusBadRequest)
	if resp.ResponseObject != nil {
		t.Errorf("payload on failure: %v", resp.ResponseObject)
	}

	resp = categories.FindAll(ctx)
	if resp.Message != "Get all categories success" {
		t.Errorf("message: %q", resp.Message)
	}
	if all := resp.ResponseObject.([]models.Category); len(all) != 0 {
		t.Errorf("row inserted on invalid input: %+v", all)
	}
}

func TestUniqueKeys(t *testing.T) {
	type When struct {
		Create func(ctx context.Context, svc *services.Resources) types.ServiceResponse
	}
	type Then struct {
		Status int
		Rows   int
	}

	cost, total, quantity := 10.0, 20.0, 2
	base := types.CreateResourceRequest{
		ResourceName: "cpu", ResourceType: "compute", Cost: &cost, Total: &total, Quantity: &quantity,
	}

	theory := func(when When, then Then) func(t *testing.T) {
		return func(t *testing.T) {
			ctx := context.Background()
			gdb, _ := testenv.NewDB(t)
			resources := services.NewResources(gdb, zerolog.Nop())

			expectStatus(t, resources.Create(ctx, base), http.StatusOK)
			expectStatus(t, when.Create(ctx, resources), then.Status)

			all := resources.FindAll(ctx).ResponseObject.([]models.Resource)
			if len(all) != then.Rows {
				t.Errorf("rows: want %d, got %d", then.Rows, len(all))
			}
		}
	}

	t.Run("same name", theory(
		When{Create: func(ctx context.Context, svc *services.Resources) types.ServiceResponse {
			return svc.Create(ctx, base)
		}},
		Then{Status: http.StatusConflict, Rows: 1},
	))

	t.Run("same name after trim", theory(
		When{Create: func(ctx context.Context, svc *services.Resources) types.ServiceResponse {
			req := base
			req.ResourceName = "  cpu\t"
			return svc.Create(ctx, req)
		}},
		Then{Status: http.StatusConflict, Rows: 1},
	))

	t.Run("other name", theory(
		When{Create: func(ctx context.Context, svc *services.Resources) types.ServiceResponse {
			req := base
			req.ResourceName = "gpu"
			return svc.Create(ctx, req)
		}},
		Then{Status: http.StatusOK, Rows: 2},
	))
}

func TestUpdateConflictsWithExistingName(t *testing.T) {
	ctx := context.Background()
	gdb, _ := testenv.NewDB(t)
	categories := services.NewCategories(gdb, zerolog.Nop())

	expectStatus(t, categories.Create(ctx, types.CreateCategoryRequest{CategoryName: "hardware"}), http.StatusOK)
	resp := categories.Create(ctx, types.CreateCategoryRequest{CategoryName: "software"})
	expectStatus(t, resp, http.StatusOK)
	software := resp.ResponseObject.(*models.Category)

	resp = categories.Update(ctx, software.CategoryID, types.UpdateCategoryRequest{
		CategoryID: software.CategoryID, CategoryName: ptr("hardware"),
	})
	expectStatus(t, resp, http.StatusConflict)

	resp = categories.FindByID(ctx, software.CategoryID)
	expectStatus(t, resp, http.StatusOK)
	if got := resp.ResponseObject.(*models.Category).CategoryName; got != "software" {
		t.Errorf("name changed on conflict: %q", got)
	}
}

func TestUnknownIDs(t *testing.T) {
	ctx := context.Background()
	gdb, _ := testenv.NewDB(t)
	tasks := services.NewTasks(gdb, zerolog.Nop())

	expectStatus(t, tasks.Create(ctx, types.CreateTaskRequest{TaskName: "draft"}), http.StatusOK)

	id := uuid.NewString()
	expectStatus(t, tasks.Update(ctx, id, types.UpdateTaskRequest{TaskID: id, TaskName: ptr("x")}), http.StatusNotFound)
	expectStatus(t, tasks.Update(ctx, id, types.UpdateTaskRequest{TaskID: id}), http.StatusNotFound)
	expectStatus(t, tasks.Delete(ctx, id), http.StatusNotFound)

	all := tasks.FindAll(ctx).ResponseObject.([]models.Task)
	if len(all) != 1 || all[0].TaskName != "draft" {
		t.Errorf("store changed: %+v", all)
	}
}

func TestTaskDefaults(t *testing.T) {
	ctx := context.Background()
	gdb, _ := testenv.NewDB(t)
	tasks := services.NewTasks(gdb, zerolog.Nop())

	start := testenv.Epoch
	resp := tasks.Create(ctx, types.CreateTaskRequest{
		TaskName:  "launch",
		Budget:    1500,
		StartDate: &start,
		EndDate:   ptr(start.Add(48 * time.Hour)),
		Metadata:  json.RawMessage(`{"priority":"high"}`),
	})
	expectStatus(t, resp, http.StatusOK)

	task := resp.ResponseObject.(*models.Task)
	if task.Status != models.TaskPending {
		t.Errorf("status: want %q, got %q", models.TaskPending, task.Status)
	}
	var meta map[string]string
	if err := json.Unmarshal(task.Metadata, &meta); err != nil || meta["priority"] != "high" {
		t.Errorf("metadata: %s (%v)", task.Metadata, err)
	}

	resp = tasks.Update(ctx, task.TaskID, types.UpdateTaskRequest{
		TaskID:    task.TaskID,
		StartDate: ptr(start.Add(72 * time.Hour)),
		EndDate:   ptr(start),
	})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestUsersAndLogin(t *testing.T) {
	ctx := context.Background()
	gdb, clk := testenv.NewDB(t)

	userRepo := repository.NewUsers(gdb)
	users := services.NewUsers(userRepo, zerolog.Nop())
	tokens := auth.NewTokens(config.JWTConfig{Secret: "0123456789abcdef", Issuer: "opsdesk", TTL: time.Hour}, clk)
	login := services.NewAuthService(userRepo, tokens, zerolog.Nop())

	resp := users.Create(ctx, types.CreateUserRequest{Username: " ada ", Password: "lovelace", Role: "admin"})
	expectStatus(t, resp, http.StatusOK)
	created := resp.ResponseObject.(*models.User)
	if created.Username != "ada" || created.Password != "" {
		t.Errorf("unexpected user: %+v", created)
	}

	expectStatus(t,
		users.Create(ctx, types.CreateUserRequest{Username: "ada", Password: "another", Role: "viewer"}),
		http.StatusConflict,
	)

	creds, err := userRepo.FindCredentials(ctx, "ada")
	if err != nil {
		t.Fatal(err)
	}
	if creds.Password == "lovelace" {
		t.Error("password stored verbatim")
	}

	resp = login.Login(ctx, types.LoginRequest{Username: "ada", Password: "lovelace"})
	expectStatus(t, resp, http.StatusOK)
	issued := resp.ResponseObject.(types.LoginResponse)
	claims, err := tokens.Verify(issued.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != created.UserID || claims.Role != "admin" {
		t.Errorf("claims: %+v", claims)
	}

	expectStatus(t, login.Login(ctx, types.LoginRequest{Username: "ada", Password: "wrong"}), http.StatusUnauthorized)
	expectStatus(t, login.Login(ctx, types.LoginRequest{Username: "bob", Password: "lovelace"}), http.StatusUnauthorized)

	resp = users.Update(ctx, created.UserID, types.UpdateUserRequest{UserID: created.UserID, Password: ptr("babbage")})
	expectStatus(t, resp, http.StatusOK)
	expectStatus(t, login.Login(ctx, types.LoginRequest{Username: "ada", Password: "babbage"}), http.StatusOK)
}

func TestTaskDatesAgainstStoredRow(t *testing.T) {
	type When struct {
		Start *time.Time
		End   *time.Time
	}
	type Then struct {
		Status int
	}

	start := testenv.Epoch
	end := start.Add(48 * time.Hour)

	theory := func(when When, then Then) func(t *testing.T) {
		return func(t *testing.T) {
			ctx := context.Background()
			gdb, _ := testenv.NewDB(t)
			tasks := services.NewTasks(gdb, zerolog.Nop())

			resp := tasks.Create(ctx, types.CreateTaskRequest{TaskName: "launch", StartDate: &start, EndDate: &end})
			expectStatus(t, resp, http.StatusOK)
			task := resp.ResponseObject.(*models.Task)

			resp = tasks.Update(ctx, task.TaskID, types.UpdateTaskRequest{
				TaskID: task.TaskID, StartDate: when.Start, EndDate: when.End,
			})
			expectStatus(t, resp, then.Status)

			if then.Status != http.StatusOK {
				stored := tasks.FindByID(ctx, task.TaskID).ResponseObject.(*models.Task)
				if !stored.StartDate.Equal(start) || !stored.EndDate.Equal(end) {
					t.Errorf("rejected update changed dates: %v - %v", stored.StartDate, stored.EndDate)
				}
			}
		}
	}

	t.Run("end alone before stored start", theory(
		When{End: ptr(start.Add(-time.Hour))},
		Then{Status: http.StatusBadRequest},
	))
	t.Run("start alone after stored end", theory(
		When{Start: ptr(end.Add(time.Hour))},
		Then{Status: http.StatusBadRequest},
	))
	t.Run("both supplied out of order", theory(
		When{Start: ptr(end), End: ptr(start)},
		Then{Status: http.StatusBadRequest},
	))
	t.Run("end alone after stored start", theory(
		When{End: ptr(start.Add(time.Hour))},
		Then{Status: http.StatusOK},
	))
	t.Run("both moved together", theory(
		When{Start: ptr(end.Add(time.Hour)), End: ptr(end.Add(2 * time.Hour))},
		Then{Status: http.StatusOK},
	))
}

func TestDetachProject(t *testing.T) {
	ctx := context.Background()
	gdb, _ := testenv.NewDB(t)
	projects := services.NewProjects(gdb, zerolog.Nop())
	users := services.NewUsers(repository.NewUsers(gdb), zerolog.Nop())
	tasks := services.NewTasks(gdb, zerolog.Nop())

	project := projects.Create(ctx, types.CreateProjectRequest{ProjectName: "Apollo"}).ResponseObject.(*models.Project)

	resp := users.Create(ctx, types.CreateUserRequest{
		Username: "ada", Password: "lovelace", Role: "admin", ProjectID: ptr(project.ProjectID),
	})
	expectStatus(t, resp, http.StatusOK)
	user := resp.ResponseObject.(*models.User)

	resp = users.Update(ctx, user.UserID, types.UpdateUserRequest{UserID: user.UserID, ProjectID: ptr("")})
	expectStatus(t, resp, http.StatusOK)
	if got := resp.ResponseObject.(*models.User).ProjectID; got != nil {
		t.Errorf("user project_id: want nil, got %q", *got)
	}

	resp = tasks.Create(ctx, types.CreateTaskRequest{TaskName: "launch", ProjectID: ptr(project.ProjectID)})
	expectStatus(t, resp, http.StatusOK)
	task := resp.ResponseObject.(*models.Task)

	resp = tasks.Update(ctx, task.TaskID, types.UpdateTaskRequest{TaskID: task.TaskID, ProjectID: ptr("")})
	expectStatus(t, resp, http.StatusOK)
	if got := resp.ResponseObject.(*models.Task).ProjectID; got != nil {
		t.Errorf("task project_id: want nil, got %q", *got)
	}
}
