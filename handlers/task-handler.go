package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	task, err := h.service.GetTask(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]

	tasks, err := h.service.GetTasksByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTasksByOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID := mux.Vars(r)["organizationID"]

	tasks, err := h.service.GetTasksByOrganization(r.Context(), organizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	organizationID := auth.CurrentOrganizationID(r.Context())

	tasks, err := h.service.GetMyTasks(r.Context(), organizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) HasActiveTasks(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]

	hasActive, err := h.service.HasActiveTasks(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasActive": hasActive})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	var input services.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), taskID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	deleteSubtasks := r.URL.Query().Get("deleteSubtasks") == "true"

	if err := h.service.DeleteTask(r.Context(), taskID, deleteSubtasks); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	var request struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTaskStatus(r.Context(), taskID, request.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) ChangeTaskPriority(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	var request struct {
		Priority models.TaskPriority `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTaskPriority(r.Context(), taskID, request.Priority)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) AssignUsers(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	var request struct {
		EmployeeIDs []string `json:"employeeIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.AssignUsers(r.Context(), taskID, request.EmployeeIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UnassignUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["taskID"]
	employeeID := vars["employeeID"]

	task, err := h.service.UnassignUser(r.Context(), taskID, employeeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) RecalculateProgress(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	task, err := h.service.RecalculateTaskProgress(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// CheckDueSoon and CheckOverdue are sweep endpoints for an external
// scheduler.
func (h *TaskHandler) CheckDueSoon(w http.ResponseWriter, r *http.Request) {
	window := 24 * time.Hour
	if param := r.URL.Query().Get("hours"); param != "" {
		if parsed, err := time.ParseDuration(param + "h"); err == nil && parsed > 0 {
			window = parsed
		}
	}

	tasks, err := h.service.CheckDueSoonTasks(r.Context(), window)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"notified": len(tasks)})
}

func (h *TaskHandler) CheckOverdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.CheckOverdueTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"notified": len(tasks)})
}
