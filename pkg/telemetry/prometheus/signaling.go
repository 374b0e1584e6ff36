// Copyright 2024 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const (
	NotificationFull    = "full"
	NotificationPartial = "partial"

	StatusApplied = "applied"
	StatusIgnored = "ignored"
	StatusSuccess = "success"
	StatusFailure = "failure"

	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

var (
	roomCurrent           atomic.Int32
	participantCurrent    atomic.Int32
	peerConnectionCurrent atomic.Int32

	promRoomCurrent             prometheus.Gauge
	promParticipantCurrent      prometheus.Gauge
	promPeerConnectionCurrent   prometheus.Gauge
	promNotificationCounter     *prometheus.CounterVec
	promInviteCounter           *prometheus.CounterVec
	promPeerConnectionOpCounter *prometheus.CounterVec
)

func initSignalingStats(clientID string) {
	labels := prometheus.Labels{"client_id": clientID}

	promRoomCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   signalingNamespace,
		Subsystem:   "room",
		Name:        "total",
		ConstLabels: labels,
	})
	promParticipantCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   signalingNamespace,
		Subsystem:   "participant",
		Name:        "total",
		ConstLabels: labels,
	})
	promPeerConnectionCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   signalingNamespace,
		Subsystem:   "peer_connection",
		Name:        "total",
		ConstLabels: labels,
	})
	promNotificationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   signalingNamespace,
		Subsystem:   "room",
		Name:        "notifications",
		ConstLabels: labels,
	}, []string{"type", "status"})
	promInviteCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   signalingNamespace,
		Subsystem:   "invite",
		Name:        "total",
		ConstLabels: labels,
	}, []string{"direction", "state"})
	promPeerConnectionOpCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   signalingNamespace,
		Subsystem:   "peer_connection",
		Name:        "operations",
		ConstLabels: labels,
	}, []string{"type", "status"})

	prometheus.MustRegister(promRoomCurrent)
	prometheus.MustRegister(promParticipantCurrent)
	prometheus.MustRegister(promPeerConnectionCurrent)
	prometheus.MustRegister(promNotificationCounter)
	prometheus.MustRegister(promInviteCounter)
	prometheus.MustRegister(promPeerConnectionOpCounter)
}

func RoomStarted() {
	v := roomCurrent.Inc()
	if initialized.Load() {
		promRoomCurrent.Set(float64(v))
	}
}

func RoomEnded() {
	v := roomCurrent.Dec()
	if initialized.Load() {
		promRoomCurrent.Set(float64(v))
	}
}

func AddParticipant() {
	v := participantCurrent.Inc()
	if initialized.Load() {
		promParticipantCurrent.Set(float64(v))
	}
}

func SubParticipant() {
	v := participantCurrent.Dec()
	if initialized.Load() {
		promParticipantCurrent.Set(float64(v))
	}
}

func AddPeerConnection() {
	v := peerConnectionCurrent.Inc()
	if initialized.Load() {
		promPeerConnectionCurrent.Set(float64(v))
	}
}

func SubPeerConnection() {
	v := peerConnectionCurrent.Dec()
	if initialized.Load() {
		promPeerConnectionCurrent.Set(float64(v))
	}
}

func RecordNotification(notificationType, status string) {
	if !initialized.Load() {
		return
	}
	promNotificationCounter.WithLabelValues(notificationType, status).Inc()
}

func RecordInvite(direction, state string) {
	if !initialized.Load() {
		return
	}
	promInviteCounter.WithLabelValues(direction, state).Inc()
}

func RecordPeerConnectionOp(opType string, err error) {
	if !initialized.Load() {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	promPeerConnectionOpCounter.WithLabelValues(opType, status).Inc()
}

func CurrentRooms() int32 {
	return roomCurrent.Load()
}

func CurrentParticipants() int32 {
	return participantCurrent.Load()
}

func CurrentPeerConnections() int32 {
	return peerConnectionCurrent.Load()
}
