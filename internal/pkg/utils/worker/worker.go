package worker

// Task is a unit of background work.
type Task func()

// Worker drains a buffered task queue on a single goroutine.
type Worker struct {
	tasks chan Task
	done  chan struct{}
}

func NewWorker(queueSize int) *Worker {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Worker{
		tasks: make(chan Task, queueSize),
		done:  make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go func() {
		defer close(w.done)
		for task := range w.tasks {
			task()
		}
	}()
}

// Stop closes the queue and blocks until every queued task has run, so a
// shutdown never drops an accepted task.
func (w *Worker) Stop() {
	close(w.tasks)
	<-w.done
}

// Submit enqueues a task; it blocks while the worker's queue is full.
func (w *Worker) Submit(task Task) {
	w.tasks <- task
}
