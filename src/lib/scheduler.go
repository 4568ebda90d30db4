package lib

import (
	"log"

	"github.com/go-co-op/gocron/v2"
)

var scheduler gocron.Scheduler

func NewScheduler(s gocron.Scheduler) {
	scheduler = s
}

func GetScheduler() (gocron.Scheduler, error) {
	if scheduler != nil {
		return scheduler, nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	sched.Start()
	scheduler = sched
	return sched, nil
}

func CreateOneTimeCronJob(def gocron.JobDefinition, task gocron.Task, options ...gocron.JobOption) (string, error) {
	sched, err := GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return "", err
	}
	j, err := sched.NewJob(def, task, options...)
	if err != nil {
		return "", err
	}
	id := j.ID().String()
	log.Printf("Job: %s %s\n", id, j.Name())
	return id, nil
}

func ShutdownScheduler() {
	if scheduler == nil {
		return
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Printf("Error shutting down Scheduler: %s\n", err.Error())
	}
	scheduler = nil
}
