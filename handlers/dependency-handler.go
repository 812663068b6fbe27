package handlers

import (
	"encoding/json"
	"net/http"

	"workhub-project/tasks-service/services"

	"github.com/gorilla/mux"
)

type DependencyHandler struct {
	service *services.DependencyService
}

func NewDependencyHandler(service *services.DependencyService) *DependencyHandler {
	return &DependencyHandler{service: service}
}

func (h *DependencyHandler) AddDependency(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TaskID         string `json:"taskId"`
		DependsOnID    string `json:"dependsOnId"`
		DependencyType string `json:"dependencyType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	dep, err := h.service.CreateDependency(r.Context(), request.TaskID, request.DependsOnID, request.DependencyType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dep)
}

func (h *DependencyHandler) RemoveDependency(w http.ResponseWriter, r *http.Request) {
	edgeID := mux.Vars(r)["edgeID"]

	if err := h.service.DeleteDependency(r.Context(), edgeID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Dependency removed successfully"})
}

func (h *DependencyHandler) GetDependencies(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	deps, err := h.service.GetDependenciesOf(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deps)
}

func (h *DependencyHandler) GetDependents(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	deps, err := h.service.GetDependents(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deps)
}

func (h *DependencyHandler) HasUnresolvedDependencies(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	unresolved, err := h.service.HasUnresolvedDependencies(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasUnresolvedDependencies": unresolved})
}
